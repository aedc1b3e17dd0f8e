// Package cli implements planctl, an offline front end to the plan views
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arnavshah/planning-view-go/internal/config"
	"github.com/arnavshah/planning-view-go/internal/logger"
)

type ctxKey struct{}

type env struct {
	cfg *config.Config
	log *zap.Logger
}

func withEnv(ctx context.Context, e *env) context.Context {
	return context.WithValue(ctx, ctxKey{}, e)
}

func envFrom(ctx context.Context) *env {
	if e, ok := ctx.Value(ctxKey{}).(*env); ok {
		return e
	}
	return &env{cfg: config.FromEnv(), log: zap.NewNop()}
}

func NewRootCmd(version string) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:          "planctl",
		Short:        "Inspect production plans and build absence-aware optimize requests",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			e := &env{cfg: config.Load(), log: zap.NewNop()}
			if verbose {
				e.log = logger.New("", false)
			}
			cmd.SetContext(withEnv(cmd.Context(), e))
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stdout")

	cmd.AddCommand(newCombineCmd())
	cmd.AddCommand(newAbsencesCmd())
	cmd.AddCommand(newQueryCmd())

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.SetVersionTemplate("{{.Version}}\n")
	if version != "" {
		cmd.Version = version
	} else {
		cmd.Version = "dev"
	}

	return cmd
}

func readJSONFile(path string, out any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	if err := json.NewDecoder(f).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
