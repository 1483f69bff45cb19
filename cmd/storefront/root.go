package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Gunvolt24/storefront/config"
	"github.com/Gunvolt24/storefront/internal/app"
	"github.com/Gunvolt24/storefront/internal/notify"
	"github.com/Gunvolt24/storefront/internal/usecase"
	"github.com/Gunvolt24/storefront/pkg/ctxmeta"
	"github.com/Gunvolt24/storefront/pkg/logger"
)

// cli — общее состояние команд: ядро собирается в PersistentPreRunE, закрывается в run.
type cli struct {
	out     io.Writer
	verbose bool

	svc     *usecase.Storefront
	cleanup []func()
}

// run — выполнить команду и освободить ресурсы ядра (в том числе после ошибки).
func run(args []string, out, errOut io.Writer) error {
	c := &cli{out: out}
	defer c.close()

	root := c.rootCmd()
	root.SetArgs(args)
	root.SetErr(errOut)
	return root.ExecuteContext(context.Background())
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "storefront",
		Short:        "Storefront client: catalogue, cart, account and checkout from the terminal",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SetContext(ctxmeta.WithOrigin(cmd.Context(), ctxmeta.OriginCLI))
			return c.open(cmd.Context())
		},
	}
	root.SetOut(c.out)
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable verbose logging")

	root.AddCommand(
		c.productsCmd(),
		c.cartCmd(),
		c.loginCmd(),
		c.signupCmd(),
		c.checkoutCmd(),
		c.logoutCmd(),
		c.renderCmd(),
		c.bootstrapCmd(),
	)
	return root
}

func (c *cli) open(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	base := zap.NewNop()
	if c.verbose {
		if base, err = zap.NewDevelopment(); err != nil {
			return err
		}
	}
	logg, syncLogger, err := logger.Wrap(base, false)
	if err != nil {
		return err
	}
	c.cleanup = append(c.cleanup, func() { _ = syncLogger() })

	svc, _, cleanup, err := app.NewStorefront(ctx, cfg, logg, notify.NewWriter(c.out))
	if err != nil {
		c.close()
		return err
	}
	c.svc = svc
	c.cleanup = append(c.cleanup, cleanup)
	return nil
}

func (c *cli) close() {
	for i := len(c.cleanup) - 1; i >= 0; i-- {
		c.cleanup[i]()
	}
	c.cleanup = nil
}
