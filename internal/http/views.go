package http

import (
	"embed"
	"html/template"

	"github.com/guttosm/package-form/internal/domain/model"
	"github.com/guttosm/package-form/internal/form"
	"github.com/guttosm/package-form/internal/i18n"
)

//go:embed templates/*.html
var templateFS embed.FS

// pageTemplate renders the form page. Parsed once at startup.
var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/form.html"))

// pageView is the data of the form page.
type pageView struct {
	Locale        string
	Form          form.Snapshot
	Selects       []selectView
	Notifications []form.Notification

	translator *i18n.Translator
}

// T translates key into the page locale.
func (v pageView) T(key string) string {
	return v.translator.Translate(key, v.Locale)
}

// selectView is one select of the modal form.
type selectView struct {
	Name            string
	Label           string
	Placeholder     string
	Options         []optionView
	Loading         bool
	Failed          bool
	SubmitsOnChange bool
}

type optionView struct {
	Value    string
	Label    string
	Selected bool
}

// newPageView lays out the three selects in form order.
func newPageView(locale string, snap form.Snapshot, notifications []form.Notification) pageView {
	t := i18n.GetTranslator()
	sel := snap.Selection

	customers := make([]optionView, 0, len(snap.Customers.Items))
	for _, c := range snap.Customers.Items {
		customers = append(customers, optionView{Value: c.ID.String(), Label: c.DisplayName(), Selected: c.ID == sel.CustomerID})
	}
	warehouses := make([]optionView, 0, len(snap.Warehouses.Items))
	for _, w := range snap.Warehouses.Items {
		warehouses = append(warehouses, optionView{Value: w.WarehouseID.String(), Label: w.WarehouseName, Selected: w.WarehouseID == sel.WarehouseID})
	}
	packageTypes := make([]optionView, 0, len(snap.PackageTypes.Items))
	for _, p := range snap.PackageTypes.Items {
		packageTypes = append(packageTypes, optionView{Value: p.ID.String(), Label: p.Name, Selected: p.ID == sel.PackageTypeID})
	}

	return pageView{
		Locale:        locale,
		Form:          snap,
		Notifications: notifications,
		translator:    t,
		Selects: []selectView{
			{
				Name:        "customer_id",
				Label:       t.Translate(i18n.KeyFormCustomer, locale),
				Placeholder: t.Translate(i18n.KeyFormSelectCustomer, locale),
				Options:     customers,
				Loading:     snap.Customers.State == model.LoadLoading,
				Failed:      snap.Customers.State == model.LoadFailed,
			},
			{
				Name:            "warehouse_id",
				Label:           t.Translate(i18n.KeyFormWarehouse, locale),
				Placeholder:     t.Translate(i18n.KeyFormSelectWarehouse, locale),
				Options:         warehouses,
				Loading:         snap.Warehouses.State == model.LoadLoading,
				Failed:          snap.Warehouses.State == model.LoadFailed,
				SubmitsOnChange: true,
			},
			{
				Name:        "package_type_id",
				Label:       t.Translate(i18n.KeyFormPackageType, locale),
				Placeholder: t.Translate(i18n.KeyFormSelectPackageType, locale),
				Options:     packageTypes,
				Loading:     snap.PackageTypes.State == model.LoadLoading,
				Failed:      snap.PackageTypes.State == model.LoadFailed,
			},
		},
	}
}
