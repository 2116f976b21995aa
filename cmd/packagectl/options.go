package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/guttosm/package-form/internal/domain/model"
	"github.com/guttosm/package-form/internal/form"
)

// Names accepted by "options [list]".
const (
	listCustomers    = "customers"
	listWarehouses   = "warehouses"
	listPackageTypes = "package-types"
)

// listError reports option lists the package API failed to return.
type listError struct {
	lists []string
}

func (e *listError) Error() string {
	return "could not load " + strings.Join(e.lists, ", ")
}

// optionsView is the JSON output of the options command.
type optionsView struct {
	Customers    *model.OptionList[model.Customer]    `json:"customers,omitempty"`
	Warehouses   *model.OptionList[model.Warehouse]   `json:"warehouses,omitempty"`
	PackageTypes *model.OptionList[model.PackageType] `json:"package_types,omitempty"`
}

func newOptionsCmd(c *cli) *cobra.Command {
	var warehouse string

	cmd := &cobra.Command{
		Use:   "options [customers|warehouses|package-types]",
		Short: "List the options the package form offers",
		Long: `List customers, warehouses and package types as the package form shows them.
With --warehouse, package types are those the warehouse still has capacity for.`,
		Example: `  packagectl options
  packagectl options package-types --warehouse 2 --json`,
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{listCustomers, listWarehouses, listPackageTypes},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctrl := c.newController()
			defer ctrl.Unmount()

			if err := ctrl.Mount(ctx); err != nil {
				return err
			}
			if warehouse != "" {
				// The load error is recorded in the package type list.
				_ = ctrl.SelectWarehouse(ctx, model.ID(warehouse))
			}

			view := selectLists(ctrl.Snapshot(), args)
			out := cmd.OutOrStdout()
			if c.settings.JSON {
				if err := writeJSON(out, view); err != nil {
					return err
				}
			} else {
				writeOptions(out, view)
			}
			return view.failures()
		},
	}

	cmd.Flags().StringVar(&warehouse, "warehouse", "", "show the package types of this warehouse id")
	return cmd
}

// selectLists keeps the lists named in args, or all of them.
func selectLists(snap form.Snapshot, args []string) optionsView {
	want := func(name string) bool {
		return len(args) == 0 || args[0] == name
	}
	var view optionsView
	if want(listCustomers) {
		view.Customers = &snap.Customers
	}
	if want(listWarehouses) {
		view.Warehouses = &snap.Warehouses
	}
	if want(listPackageTypes) {
		view.PackageTypes = &snap.PackageTypes
	}
	return view
}

// failures returns a *listError naming every failed list, or nil.
func (v optionsView) failures() error {
	var failed []string
	if v.Customers != nil && v.Customers.State == model.LoadFailed {
		failed = append(failed, listCustomers)
	}
	if v.Warehouses != nil && v.Warehouses.State == model.LoadFailed {
		failed = append(failed, listWarehouses)
	}
	if v.PackageTypes != nil && v.PackageTypes.State == model.LoadFailed {
		failed = append(failed, listPackageTypes)
	}
	if len(failed) == 0 {
		return nil
	}
	return &listError{lists: failed}
}

func writeOptions(out io.Writer, v optionsView) {
	var sections []func(*tabwriter.Writer)

	if v.Customers != nil {
		sections = append(sections, func(w *tabwriter.Writer) {
			if !writeHeading(w, "CUSTOMERS", v.Customers.State, v.Customers.Error, "ID\tNAME") {
				return
			}
			for _, customer := range v.Customers.Items {
				fmt.Fprintf(w, "%s\t%s\n", customer.ID, customer.DisplayName())
			}
		})
	}
	if v.Warehouses != nil {
		sections = append(sections, func(w *tabwriter.Writer) {
			if !writeHeading(w, "WAREHOUSES", v.Warehouses.State, v.Warehouses.Error, "ID\tNAME") {
				return
			}
			for _, warehouse := range v.Warehouses.Items {
				fmt.Fprintf(w, "%s\t%s\n", warehouse.WarehouseID, warehouse.WarehouseName)
			}
		})
	}
	if v.PackageTypes != nil {
		sections = append(sections, func(w *tabwriter.Writer) {
			if !writeHeading(w, "PACKAGE TYPES", v.PackageTypes.State, v.PackageTypes.Error, "ID\tNAME\tCAPACITY") {
				return
			}
			for _, pt := range v.PackageTypes.Items {
				capacity := "-"
				if pt.AvailableCapacity != nil {
					capacity = strconv.FormatFloat(*pt.AvailableCapacity, 'f', -1, 64)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", pt.ID, pt.Name, capacity)
			}
		})
	}

	for i, section := range sections {
		if i > 0 {
			fmt.Fprintln(out)
		}
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		section(w)
		w.Flush()
	}
}

// writeHeading prints a section title and, for a usable list, its column
// header. It reports whether rows should follow.
func writeHeading(w io.Writer, title string, state model.LoadState, loadErr, columns string) bool {
	if state == model.LoadFailed {
		fmt.Fprintf(w, "%s (failed: %s)\n", title, loadErr)
		return false
	}
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, columns)
	return true
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
