package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/guttosm/package-form/internal/domain/model"
	"github.com/guttosm/package-form/internal/form"
)

// submitError reports a create request that did not succeed.
type submitError struct {
	result string
	err    error
}

func (e *submitError) Error() string {
	return fmt.Sprintf("package not created (%s)", e.result)
}

func (e *submitError) Unwrap() error {
	return e.err
}

// createView is the JSON output of the create command.
type createView struct {
	Result    string          `json:"result"`
	Message   string          `json:"message,omitempty"`
	Selection model.Selection `json:"selection"`
}

func newCreateCmd(c *cli) *cobra.Command {
	var customer, warehouse, packageType string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a package",
		Long: `Create a package for a customer in a warehouse. The ids must be among the
options the package form offers; the package type must still have capacity
at the warehouse.`,
		Example: `  packagectl create --customer 7 --warehouse 2 --package-type 3`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var notifier form.Notifier = terminalNotifier{out: cmd.OutOrStdout(), errOut: cmd.ErrOrStderr()}
			queue := form.NewQueue(form.DefaultQueueSize)
			if c.settings.JSON {
				notifier = queue
			}

			ctrl := c.newController(form.WithNotifier(notifier))
			defer ctrl.Unmount()

			if err := ctrl.Mount(ctx); err != nil {
				return err
			}
			ctrl.Open()

			if err := chooseOptions(ctx, ctrl, model.ID(customer), model.ID(warehouse), model.ID(packageType)); err != nil {
				return err
			}

			result, err := ctrl.Submit(ctx)
			if err != nil && result == "" {
				if errors.Is(err, form.ErrIncompleteSelection) {
					return usageErrorf("%v", err)
				}
				return err
			}

			if c.settings.JSON {
				view := createView{Result: result, Selection: ctrl.Snapshot().Selection}
				if drained := queue.Drain(); len(drained) > 0 {
					view.Message = drained[len(drained)-1].Message
				}
				if werr := writeJSON(cmd.OutOrStdout(), view); werr != nil {
					return werr
				}
			}
			if err != nil {
				return &submitError{result: result, err: err}
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&customer, "customer", "", "customer id")
	flags.StringVar(&warehouse, "warehouse", "", "warehouse id")
	flags.StringVar(&packageType, "package-type", "", "package type id")
	return cmd
}

// chooseOptions selects each non-empty id after checking the form offers it.
// Empty ids are left unselected for Submit to report.
func chooseOptions(ctx context.Context, ctrl *form.Controller, customer, warehouse, packageType model.ID) error {
	snap := ctrl.Snapshot()

	if customer != "" {
		if err := offered(listCustomers, snap.Customers.State, customer, func() bool {
			for _, c := range snap.Customers.Items {
				if c.ID == customer {
					return true
				}
			}
			return false
		}); err != nil {
			return err
		}
		ctrl.SelectCustomer(customer)
	}

	if warehouse != "" {
		if err := offered(listWarehouses, snap.Warehouses.State, warehouse, func() bool {
			for _, w := range snap.Warehouses.Items {
				if w.WarehouseID == warehouse {
					return true
				}
			}
			return false
		}); err != nil {
			return err
		}
		if err := ctrl.SelectWarehouse(ctx, warehouse); err != nil {
			return &listError{lists: []string{listPackageTypes}}
		}
		snap = ctrl.Snapshot()
	}

	if packageType != "" {
		if err := offered(listPackageTypes, snap.PackageTypes.State, packageType, func() bool {
			for _, pt := range snap.PackageTypes.Items {
				if pt.ID == packageType {
					return true
				}
			}
			return false
		}); err != nil {
			return err
		}
		ctrl.SelectPackageType(packageType)
	}
	return nil
}

// offered fails when list could not be loaded or does not contain id.
func offered(list string, state model.LoadState, id model.ID, contains func() bool) error {
	if state == model.LoadFailed {
		return &listError{lists: []string{list}}
	}
	if !contains() {
		return usageErrorf("%s: %q is not offered", list, id)
	}
	return nil
}
