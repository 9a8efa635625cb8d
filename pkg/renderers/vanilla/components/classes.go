package components

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-formwidgets/pkg/widgets"
)

const (
	labelClass  = "block mb-2 text-sm font-semibold text-secondary-light dark:text-secondary-dark ml-2"
	helperClass = "mt-1 ml-2 text-sm text-secondary-light dark:text-secondary-dark"
	errorClass  = "mt-1 ml-2 text-sm text-error"
	validBorder = "border-secondary-light"
	errorBorder = "border-red-500"
)

// Classes derives the utility class strings a widget template needs from the
// view's style and state. Only the border colour depends on state.
func Classes(view widgets.View) map[string]string {
	style := view.Style
	rounded := orDefault(style.RoundedSize, "full")
	textSize := orDefault(style.TextSize, "sm")
	spacing := "mx-" + strconv.Itoa(style.SpaceX) + " my-" + strconv.Itoa(style.SpaceY) + " w-" + orDefault(style.Width, "full")

	border := validBorder
	if !view.Valid {
		border = errorBorder
	}

	classes := map[string]string{
		"wrapper": spacing,
		"label":   labelClass,
		"helper":  helperClass,
		"error":   errorClass,
	}

	switch view.Kind {
	case widgets.KindTextField, widgets.KindSelectField:
		classes["input"] = join(
			"flex-grow bg-background-light dark:bg-background-dark border", border,
			"dark:border-secondary-dark text-text-light dark:text-text-dark focus:ring-primary focus:border-primary p-2.5",
			"rounded-"+rounded, "text-"+textSize,
		)
		classes["button"] = join("flex items-center mx-1 cursor-pointer bg-primary-light hover:bg-slate-500 px-4", "rounded-"+rounded)
	case widgets.KindFileUploader:
		classes["wrapper"] = join("flex flex-col items-start", spacing)
		classes["dropzone"] = join(
			"flex flex-col border-dashed items-center justify-center w-full cursor-pointer border-2", border,
			"dark:border-secondary-dark bg-background dark:bg-background-dark hover:bg-gray-100 dark:hover:bg-gray-600",
			"rounded-"+orDefault(style.RoundedSize, "xl"),
		)
	case widgets.KindSearchBar:
		classes["wrapper"] = join("flex items-start flex-col", spacing)
		classes["input"] = join(
			"bg-background-light dark:bg-background-dark border border-secondary-light dark:border-secondary-dark text-text-light dark:text-text-dark block w-full ps-10 p-2.5",
			"rounded-"+rounded, "text-"+textSize,
		)
		classes["button"] = join("p-2.5 ms-2 text-sm font-medium text-white bg-primary-light dark:bg-primary-dark", "rounded-"+rounded)
	case widgets.KindSearchCategory:
		rounded = orDefault(style.RoundedSize, "lg")
		classes["wrapper"] = join("flex items-start flex-col", spacing)
		classes["menu_button"] = join(
			"flex-shrink-0 z-10 inline-flex items-center py-3.5 px-2 text-sm font-medium border truncate max-w-xs",
			"rounded-s-"+rounded, "rounded-tr-none rounded-br-none text-text-light dark:text-text-dark bg-gray-100 hover:bg-gray-200 dark:bg-gray-700 dark:hover:bg-gray-600",
		)
		classes["menu"] = join("absolute z-10 bg-background-light dark:bg-background-dark divide-y divide-gray-100 shadow w-max", "rounded-"+rounded)
		classes["menu_item"] = "inline-flex w-max px-4 py-2 hover:bg-gray-100 dark:hover:bg-gray-600 text-text-light dark:text-text-dark truncate"
		classes["input"] = join("block p-2.5 w-full z-20 text-gray-900 bg-gray-50 rounded-none border border-gray-300", "text-"+textSize)
		classes["button"] = join("p-2.5 text-sm font-medium text-white bg-primary-light dark:bg-primary-dark rounded-l-none", "rounded-r-"+rounded)
	}
	return classes
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

func join(parts ...string) string {
	return strings.Join(parts, " ")
}
