package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/prperemyshlev/seller-portal/internal/domain"
	"github.com/prperemyshlev/seller-portal/internal/dto"
	"github.com/prperemyshlev/seller-portal/internal/portal"
	"github.com/prperemyshlev/seller-portal/internal/registration"
	"github.com/spf13/cobra"
)

func (c *cli) registerCommand() *cobra.Command {
	var (
		data       registration.CompleteRegistrationData
		category   string
		idDocument string
		regCert    string
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a vendor account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			wizard := registration.NewWizard(registration.NewPipeline(c.client, c.session, c.logger))

			var err error
			if data.IDDocument, err = readAttachment(idDocument); err != nil {
				return err
			}
			if data.BusinessRegCertificate, err = readAttachment(regCert); err != nil {
				return err
			}
			wizard.Data = data
			// the flag is typed once, so it is its own confirmation
			wizard.ConfirmPassword = data.Password

			if category != "" {
				categories, err := c.portal.Catalog.Categories(ctx)
				if err != nil {
					return err
				}
				if !wizard.SelectCategory(categories, category) {
					return fmt.Errorf("unknown category %q, see `sellerctl categories`", category)
				}
			}

			for wizard.Step() < registration.StepBusinessDetails {
				if err := wizard.Next(); err != nil {
					return stepError(wizard, err)
				}
			}

			if _, err := wizard.Submit(ctx); err != nil {
				return stepError(wizard, err)
			}

			user, _ := c.session.User(ctx)
			if user == nil {
				fmt.Fprintln(c.out, "Registration submitted.")
				return nil
			}
			return c.print(user, func() {
				fmt.Fprintf(c.out, "Registered %s (%s) and signed in.\n", user.BusinessName, user.EmailAddress)
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&data.EmailAddress, "email", "", "email address")
	f.StringVar(&data.Password, "password", os.Getenv("SELLER_PASSWORD"), "password (env SELLER_PASSWORD)")
	f.StringVar(&data.FullName, "full-name", "", "full name")
	f.StringVar(&data.BusinessName, "business-name", "", "business name")
	f.StringVar(&category, "category", "", "business category name or id")
	f.StringVar(&data.PhoneNumber, "phone", "", "Nigerian phone number")
	f.StringVar(&data.StoreName, "store-name", "", "store name")
	f.StringVar(&data.BusinessAddress, "address", "", "business address")
	f.StringVar(&data.BusinessRegNumber, "reg-number", "", "business registration number (optional)")
	f.StringVar(&data.TaxIDNumber, "tax-id", "", "tax identification number (optional)")
	f.StringVar(&idDocument, "id-document", "", "path to the ID document")
	f.StringVar(&regCert, "reg-certificate", "", "path to the business registration certificate")
	return cmd
}

// stepError attaches the wizard's field errors to a local validation failure
func stepError(wizard *registration.Wizard, err error) error {
	if errors.Is(err, registration.ErrStepInvalid) {
		return &registration.RegistrationError{
			Message:     fmt.Sprintf("%s step is incomplete", wizard.Step()),
			FieldErrors: wizard.Errors(),
		}
	}
	return err
}

func (c *cli) loginCommand() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := c.portal.Auth.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			return c.print(user, func() {
				fmt.Fprintf(c.out, "Signed in as %s (%s).\n", user.FullName, user.EmailAddress)
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", os.Getenv("SELLER_PASSWORD"), "password (env SELLER_PASSWORD)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (c *cli) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.portal.Auth.Logout(cmd.Context())
			fmt.Fprintln(c.out, "Signed out.")
			return nil
		},
	}
}

func (c *cli) whoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in vendor",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !c.portal.Auth.IsAuthenticated(cmd.Context()) {
				return errors.New("not signed in, run `sellerctl login`")
			}
			user, err := c.portal.Auth.Me(cmd.Context())
			if err != nil {
				return err
			}
			return c.print(user, func() {
				c.table([]string{"FIELD", "VALUE"}, [][]string{
					{"id", user.ID},
					{"email", user.EmailAddress},
					{"name", user.FullName},
					{"business", user.BusinessName},
					{"store", user.StoreName},
					{"phone", user.PhoneNumber},
					{"verified", strconv.FormatBool(user.Verified)},
				})
			})
		},
	}
}

func (c *cli) categoriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List business categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			categories, err := c.portal.Catalog.Categories(cmd.Context())
			if err != nil {
				return err
			}
			return c.print(categories, func() {
				rows := make([][]string, 0, len(categories))
				for _, cat := range categories {
					rows = append(rows, []string{strconv.Itoa(cat.ID), cat.Name})
				}
				c.table([]string{"ID", "NAME"}, rows)
			})
		},
	}
}

func (c *cli) productsCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "products", Short: "Manage products"}

	var page, limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List products",
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := c.portal.Products.List(cmd.Context(), page, limit)
			if err != nil {
				return err
			}
			return c.print(result, func() {
				rows := make([][]string, 0, len(result.Items))
				for _, p := range result.Items {
					rows = append(rows, []string{p.ID, p.Name, formatNaira(p.Price), strconv.Itoa(p.Stock), strconv.Itoa(len(p.Images))})
				}
				c.table([]string{"ID", "NAME", "PRICE", "STOCK", "IMAGES"}, rows)
				c.pageFooter(result.Pagination.Page, result.Pagination.TotalPages, result.Pagination.Total)
			})
		},
	}
	list.Flags().IntVar(&page, "page", 0, "page number")
	list.Flags().IntVar(&limit, "limit", 0, "page size")

	var (
		req    dto.ProductRequest
		images []string
	)
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a product and upload its images",
		RunE: func(cmd *cobra.Command, _ []string) error {
			files := make([]portal.ImageFile, 0, len(images))
			for _, path := range images {
				content, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("failed to read image: %w", err)
				}
				files = append(files, portal.ImageFile{Filename: filepath.Base(path), Content: content})
			}

			product, err := c.portal.Products.CreateWithImages(cmd.Context(), req, files)
			if err != nil {
				if product != nil {
					fmt.Fprintf(c.errOut, "Product %s was created without images.\n", product.ID)
				}
				return err
			}
			return c.print(product, func() {
				fmt.Fprintf(c.out, "Created product %s (%s) with %d image(s).\n", product.Name, product.ID, len(product.Images))
			})
		},
	}
	cf := create.Flags()
	cf.StringVar(&req.Name, "name", "", "product name")
	cf.StringVar(&req.Description, "description", "", "description")
	cf.Float64Var(&req.Price, "price", 0, "price in naira")
	cf.IntVar(&req.Stock, "stock", 0, "units in stock")
	cf.IntVar(&req.CategoryID, "category-id", 0, "category id")
	cf.StringArrayVar(&images, "image", nil, "image file to upload (repeatable)")
	_ = create.MarkFlagRequired("name")

	cmd.AddCommand(list, create)
	return cmd
}

func (c *cli) ordersCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "orders", Short: "Manage orders"}

	var (
		status      string
		page, limit int
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List orders",
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := c.portal.Orders.List(cmd.Context(), domain.OrderStatus(status), page, limit)
			if err != nil {
				return err
			}
			return c.print(result, func() {
				rows := make([][]string, 0, len(result.Items))
				for _, o := range result.Items {
					rows = append(rows, []string{o.ID, o.CustomerName, string(o.Status), formatNaira(o.Total), o.CreatedAt.Format("2006-01-02")})
				}
				c.table([]string{"ID", "CUSTOMER", "STATUS", "TOTAL", "DATE"}, rows)
				c.pageFooter(result.Pagination.Page, result.Pagination.TotalPages, result.Pagination.Total)
			})
		},
	}
	list.Flags().StringVar(&status, "status", "", "filter by status")
	list.Flags().IntVar(&page, "page", 0, "page number")
	list.Flags().IntVar(&limit, "limit", 0, "page size")

	cmd.AddCommand(list)
	return cmd
}

func (c *cli) dashboardCommand() *cobra.Command {
	var period string

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show headline numbers and recent orders",
		RunE: func(cmd *cobra.Command, _ []string) error {
			overview, err := c.portal.Dashboard.Overview(cmd.Context())
			if err != nil {
				return err
			}

			var analytics *domain.Analytics
			if period != "" {
				if analytics, err = c.portal.Dashboard.Analytics(cmd.Context(), period); err != nil {
					return err
				}
			}

			payload := struct {
				*portal.Overview
				Analytics *domain.Analytics `json:"analytics,omitempty"`
			}{overview, analytics}

			return c.print(payload, func() {
				s := overview.Summary
				c.table([]string{"PRODUCTS", "ORDERS", "PENDING", "REVENUE"}, [][]string{
					{strconv.Itoa(s.TotalProducts), strconv.Itoa(s.TotalOrders), strconv.Itoa(s.PendingOrders), formatNaira(s.Revenue)},
				})
				fmt.Fprintln(c.out)

				rows := make([][]string, 0, len(overview.RecentOrders))
				for _, o := range overview.RecentOrders {
					rows = append(rows, []string{o.CustomerName, string(o.Status), formatNaira(o.Total)})
				}
				c.table([]string{"CUSTOMER", "STATUS", "TOTAL"}, rows)

				if analytics != nil {
					fmt.Fprintln(c.out)
					rows := make([][]string, 0, len(analytics.Points))
					for _, p := range analytics.Points {
						rows = append(rows, []string{p.Date, strconv.Itoa(p.Orders), formatNaira(p.Revenue)})
					}
					c.table([]string{"DATE", "ORDERS", "REVENUE"}, rows)
				}
			})
		},
	}
	cmd.Flags().StringVar(&period, "period", "", "also show analytics for 7d, 30d or 90d")
	return cmd
}

// readAttachment loads a document for upload; an empty path means none
func readAttachment(path string) (*registration.Attachment, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return &registration.Attachment{Filename: filepath.Base(path), Content: content}, nil
}
