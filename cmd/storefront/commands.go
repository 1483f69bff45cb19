package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/page"
	"github.com/Gunvolt24/storefront/internal/view"
)

func (c *cli) productsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "products",
		Short: "List the product catalogue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res := c.svc.Products(cmd.Context())
			if res.Err != nil {
				fmt.Fprintln(c.out, "Could not load products: service unavailable")
				return res.Err
			}
			tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
			for _, p := range res.Products {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Category, view.FormatPrice(p.Price))
			}
			return tw.Flush()
		},
	}
}

func (c *cli) cartCmd() *cobra.Command {
	cart := &cobra.Command{
		Use:   "cart",
		Short: "Show or change the cart",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print cart lines and total",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return c.printCart(c.svc.Cart())
		},
	}

	add := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add one unit of a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := c.svc.AddToCartByID(cmd.Context(), args[0])
			return cartError(err)
		},
	}

	set := &cobra.Command{
		Use:   "set <product-id> <qty>",
		Short: "Set line quantity (0 removes the line)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("qty must be a number: %q", args[1])
			}
			_, err = c.svc.UpdateQuantity(cmd.Context(), args[0], qty)
			return cartError(err)
		},
	}

	remove := &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := c.svc.RemoveFromCart(cmd.Context(), args[0])
			return cartError(err)
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.svc.ClearCart(cmd.Context())
			return nil
		},
	}

	cart.AddCommand(show, add, set, remove, clearCmd)
	return cart
}

func (c *cli) loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <phone> <password>",
		Short: "Log in and remember the user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.printAuth(c.svc.Login(cmd.Context(), args[0], args[1]))
		},
	}
}

func (c *cli) signupCmd() *cobra.Command {
	var req domain.SignupRequest

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and remember the user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.printAuth(c.svc.Signup(cmd.Context(), req))
		},
	}
	f := cmd.Flags()
	f.StringVar(&req.Name, "name", "", "Full name")
	f.StringVar(&req.Phone, "phone", "", "Phone number")
	f.StringVar(&req.Password, "password", "", "Password")
	f.StringVar(&req.Address, "address", "", "Delivery address")
	f.StringVar(&req.City, "city", "", "City")
	f.StringVar(&req.Pincode, "pincode", "", "PIN code")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("phone")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (c *cli) checkoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkout",
		Short: "Place an order for the current cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res := c.svc.Checkout(cmd.Context())
			if !res.OK() {
				msg := res.Message
				if msg == "" {
					msg = "order could not be saved"
				}
				fmt.Fprintf(c.out, "Order failed: %s\n", msg)
				return errors.New(msg)
			}
			fmt.Fprintf(c.out, "Order placed: %s\n", res.OrderID)
			return nil
		},
	}
}

func (c *cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(c.out, "Logged out, continue at %s\n", c.svc.Logout(cmd.Context()))
			return nil
		},
	}
}

func (c *cli) renderCmd() *cobra.Command {
	var path string

	render := &cobra.Command{
		Use:   "render",
		Short: "Render a shared page fragment for the current state",
	}
	render.PersistentFlags().StringVar(&path, "path", "/"+view.PageHome, "Page path used for active nav item")

	header := &cobra.Command{
		Use:   "header",
		Short: "Render the page header",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return c.printFragment(view.Header, path)
		},
	}
	nav := &cobra.Command{
		Use:   "nav",
		Short: "Render the mobile navigation",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return c.printFragment(view.Nav, path)
		},
	}

	render.AddCommand(header, nav)
	return render
}

func (c *cli) bootstrapCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "bootstrap <page.html>",
		Short: "Fill header, nav, cart badge and icon script of a page",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			out, err := page.Bootstrap(raw, c.svc.ViewState(args[0]))
			if err != nil {
				return err
			}
			if output == "" {
				_, err = c.out.Write(out)
				return err
			}
			return os.WriteFile(output, out, 0o644)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write result to file instead of stdout")
	return cmd
}

// ------вспомогательные функции------

func (c *cli) printCart(cart domain.Cart) error {
	if cart.IsEmpty() {
		fmt.Fprintln(c.out, "Cart is empty")
		return nil
	}
	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	for _, l := range cart.Lines {
		fmt.Fprintf(tw, "%s\t%s\tx%d\t%s\n", l.ID, l.Name, l.Qty, view.FormatPrice(l.Price*int64(l.Qty)))
	}
	fmt.Fprintf(tw, "\t\tTotal\t%s\n", view.FormatPrice(cart.Total()))
	return tw.Flush()
}

func (c *cli) printAuth(res domain.AuthResult) error {
	if !res.OK() {
		fmt.Fprintf(c.out, "Login failed: %s\n", res.Message)
		return errors.New(res.Message)
	}
	fmt.Fprintf(c.out, "Welcome, %s\n", res.User.Name)
	return nil
}

func (c *cli) printFragment(render func(view.State) (string, error), path string) error {
	out, err := render(c.svc.ViewState(path))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.out, out)
	return err
}

func cartError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrProductNotFound):
		return fmt.Errorf("no such product: %w", err)
	case errors.Is(err, domain.ErrLineNotFound):
		return fmt.Errorf("not in cart: %w", err)
	case errors.Is(err, domain.ErrTransport), errors.Is(err, domain.ErrBadStatus):
		return fmt.Errorf("service unavailable: %w", err)
	default:
		return err
	}
}
