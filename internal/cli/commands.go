package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rohmanhakim/cloudmeta/internal/build"
	"github.com/rohmanhakim/cloudmeta/internal/service"
	"github.com/rohmanhakim/cloudmeta/pkg/fileutil"
	"github.com/rohmanhakim/cloudmeta/pkg/hashutil"
	"github.com/spf13/cobra"
)

var metadataCmd = &cobra.Command{
	Use:   "metadata",
	Short: "Fetch the instance metadata document",
	Long: `Fetches the metadata document for the selected category and version
and prints it as indented JSON, or writes meta_data.json into --output-dir.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAccessor(func(acc *service.Accessor) error {
			doc, err := acc.GetMetaData(category, metaVersion)
			if err != nil {
				return err
			}
			rendered, jsonErr := json.MarshalIndent(doc, "", "  ")
			if jsonErr != nil {
				return jsonErr
			}
			return emit("meta_data.json", append(rendered, '\n'))
		})
	},
}

var userdataCmd = &cobra.Command{
	Use:   "userdata",
	Short: "Fetch the instance user-data blob",
	Long: `Fetches the opaque user-data blob for the selected category and
version. The blob is passed through byte for byte; no decoding is attempted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAccessor(func(acc *service.Accessor) error {
			data, err := acc.GetUserData(category, metaVersion)
			if err != nil {
				return err
			}
			return emit("user_data", data)
		})
	},
}

var contentCmd = &cobra.Command{
	Use:   "content <name>",
	Short: "Fetch a named content blob",
	Long: `Fetches the content blob registered under the given name, e.g. the
files referenced from the metadata document.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		return withAccessor(func(acc *service.Accessor) error {
			data, err := acc.GetContent(category, name)
			if err != nil {
				return err
			}
			return emit(filepath.Base(name), data)
		})
	},
}

var passwordCmd = &cobra.Command{
	Use:   "password",
	Short: "Inspect or set the instance password state",
}

var passwordStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report whether the provider holds a password",
	Long: `Prints "set" when the provider holds a non-empty password blob for
the selected version and "unset" otherwise. The check always goes to the
backend; the result is never cached.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAccessor(func(acc *service.Accessor) error {
			set, err := acc.PasswordSet(metaVersion)
			if err != nil {
				return err
			}
			if set {
				fmt.Fprintln(os.Stdout, "set")
			} else {
				fmt.Fprintln(os.Stdout, "unset")
			}
			return nil
		})
	},
}

var passwordSetCmd = &cobra.Command{
	Use:   "set <encrypted-password-b64>",
	Short: "Post an encrypted password to the provider",
	Long: `Posts the base64-encoded encrypted password to the provider for the
selected version. Fails when the backend has no write channel.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		encPassword := args[0]
		return withAccessor(func(acc *service.Accessor) error {
			if !acc.CanPostPassword() {
				return fmt.Errorf("backend %q does not support password writes", acc.Name())
			}
			if postErr := acc.PostPassword(encPassword, metaVersion); postErr != nil {
				return postErr
			}
			return nil
		})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of cloudmeta",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "cloudmeta %s (built %s)\n", build.FullVersion(), build.BuildTime)
	},
}

func init() {
	passwordCmd.AddCommand(passwordStatusCmd)
	passwordCmd.AddCommand(passwordSetCmd)

	rootCmd.AddCommand(metadataCmd)
	rootCmd.AddCommand(userdataCmd)
	rootCmd.AddCommand(contentCmd)
	rootCmd.AddCommand(passwordCmd)
	rootCmd.AddCommand(versionCmd)
}

// withAccessor runs fn against a freshly wired accessor and takes care of
// config loading, cleanup and the optional fetch summary.
func withAccessor(fn func(acc *service.Accessor) error) error {
	cfg, err := InitConfigWithError()
	if err != nil {
		return err
	}

	acc, recorder, err := newAccessor(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cleanupErr := acc.Cleanup(); cleanupErr != nil {
			fmt.Fprintf(os.Stderr, "cleanup: %v\n", cleanupErr)
		}
		printSummary(recorder)
	}()

	return fn(acc)
}

// emit writes a fetched payload either to stdout or, when --output-dir is
// set, to a file named after the artifact.
func emit(name string, data []byte) error {
	if withChecksum {
		fp, err := hashutil.Fingerprint(data, hashutil.HashAlgoBLAKE3)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "blake3:%s\n", fp)
	}

	if outputDir == "" {
		_, err := os.Stdout.Write(data)
		return err
	}

	writePath := filepath.Join(outputDir, name)
	if err := fileutil.WriteFile(writePath, data); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %s (%d bytes)\n", writePath, len(data))
	return nil
}
