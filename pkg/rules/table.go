package rules

import "regexp"

var (
	extTS        = []string{".ts"}
	extTemplates = []string{".html", ".ts"}
	extStyles    = []string{".css", ".scss", ".sass"}
	extAll       = []string{".html", ".ts", ".css", ".scss", ".sass"}
)

// Table returns the canonical rule table in application order. The order
// is part of the contract: import and module renames run before selector
// renames, selector renames before CSS renames, so that no rule's output
// can feed a later rule's pattern by accident.
func Table() []Rule {
	return []Rule{
		// --- import path renames ---
		importRename("calendar-import", "primeng/calendar", "primeng/datepicker"),
		importRename("dropdown-import", "primeng/dropdown", "primeng/select"),
		importRename("inputswitch-import", "primeng/inputswitch", "primeng/toggleswitch"),
		importRename("overlaypanel-import", "primeng/overlaypanel", "primeng/popover"),
		importRename("sidebar-import", "primeng/sidebar", "primeng/drawer"),
		importRename("animate-import", "primeng/animate", "primeng/animateonscroll"),

		// --- module class renames ---
		moduleRename("calendar-module", "CalendarModule", "DatePickerModule"),
		moduleRename("dropdown-module", "DropdownModule", "SelectModule"),
		moduleRename("inputswitch-module", "InputSwitchModule", "ToggleSwitchModule"),
		moduleRename("overlaypanel-module", "OverlayPanelModule", "PopoverModule"),
		moduleRename("sidebar-module", "SidebarModule", "DrawerModule"),
		moduleRename("animate-module", "AnimateModule", "AnimateOnScrollModule"),

		// --- template selector renames ---
		selectorRename("calendar-selector", "p-calendar", "p-datepicker"),
		selectorRename("dropdown-selector", "p-dropdown", "p-select"),
		selectorRename("inputswitch-selector", "p-inputSwitch", "p-toggleswitch"),
		selectorRename("overlaypanel-selector", "p-overlayPanel", "p-popover"),
		selectorRename("sidebar-selector", "p-sidebar", "p-drawer"),

		// --- directive/attribute renames ---
		{
			Name:        "animate-directive",
			Description: "rename pAnimate directive to pAnimateOnScroll",
			Category:    CategoryAttribute,
			Extensions:  extTemplates,
			Pattern:     regexp.MustCompile(`\bpAnimate\b`),
			Replacement: "pAnimateOnScroll",
		},
		{
			Name:        "severity-warning",
			Description: `rename severity value "warning" to "warn"`,
			Category:    CategoryAttribute,
			Extensions:  extTemplates,
			Pattern:     regexp.MustCompile(`(severity\]?\s*=\s*"'?)warning('?")`),
			Replacement: "${1}warn${2}",
		},

		// --- CSS class renames ---
		{
			Name:        "highlight-class",
			Description: "rename p-highlight class to p-highlighted",
			Category:    CategoryCSS,
			Extensions:  extAll,
			Pattern:     regexp.MustCompile(`\bp-highlight\b`),
			Replacement: "p-highlighted",
		},
		cssPrefixRename("calendar-css", "p-calendar", "p-datepicker"),
		cssPrefixRename("dropdown-css", "p-dropdown", "p-select"),
		cssPrefixRename("inputswitch-css", "p-inputswitch", "p-toggleswitch"),
		cssPrefixRename("overlaypanel-css", "p-overlaypanel", "p-popover"),
		cssPrefixRename("sidebar-css", "p-sidebar", "p-drawer"),

		// --- CSS class removals ---
		{
			Name:        "fluid-class",
			Description: "remove the p-fluid utility class",
			Category:    CategoryCSS,
			Extensions:  extAll,
			Transform:   removeClassToken("p-fluid"),
		},
		{
			Name:        "link-class",
			Description: "remove the p-link utility class",
			Category:    CategoryCSS,
			Extensions:  extAll,
			Transform:   removeClassToken("p-link"),
		},

		// --- element removals ---
		{
			Name:        "defer-element",
			Description: "remove the deleted p-defer element (migrate to @defer manually)",
			Category:    CategoryStructure,
			Extensions:  []string{".html"},
			Transform:   removeDeferElement,
		},
	}
}

// Lookup returns the rule with the given name from the canonical table.
func Lookup(name string) (Rule, bool) {
	for _, r := range Table() {
		if r.Name == name {
			return r, true
		}
	}
	return Rule{}, false
}

// importRename covers both quote styles used in TypeScript imports.
func importRename(name, from, to string) Rule {
	return Rule{
		Name:        name,
		Description: "rename import path " + from + " to " + to,
		Category:    CategoryImport,
		Extensions:  extTS,
		Pattern:     regexp.MustCompile(`(['"])` + regexp.QuoteMeta(from) + `(['"])`),
		Replacement: "${1}" + to + "${2}",
	}
}

func moduleRename(name, from, to string) Rule {
	return Rule{
		Name:        name,
		Description: "rename " + from + " to " + to,
		Category:    CategoryModule,
		Extensions:  extTS,
		Pattern:     regexp.MustCompile(`\b` + regexp.QuoteMeta(from) + `\b`),
		Replacement: to,
	}
}

// selectorRename matches opening and closing tags only when the tag name
// is followed by a delimiter, so p-calendar never matches inside a longer
// tag name and a second application finds nothing to change.
func selectorRename(name, from, to string) Rule {
	return Rule{
		Name:        name,
		Description: "rename <" + from + "> selector to <" + to + ">",
		Category:    CategorySelector,
		Extensions:  extTemplates,
		Pattern:     regexp.MustCompile(`(</?)` + regexp.QuoteMeta(from) + `([\s>/])`),
		Replacement: "${1}" + to + "${2}",
	}
}

// cssPrefixRename renames a component's class prefix in stylesheets, so
// p-sidebar-mask becomes p-drawer-mask in one pass.
func cssPrefixRename(name, from, to string) Rule {
	return Rule{
		Name:        name,
		Description: "rename " + from + " style classes to " + to,
		Category:    CategoryCSS,
		Extensions:  extStyles,
		Pattern:     regexp.MustCompile(`\b` + regexp.QuoteMeta(from) + `\b`),
		Replacement: to,
	}
}
