package ui

import (
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/ghostcat/ghostcat/common"
)

// Theme-aware styles for the device pages.
const appCSS = `
/* Resolution rows */
.resolution-row {
    border-radius: 10px;
    margin: 4px 12px;
    padding: 4px;
}

.resolution-row:hover {
    background-color: alpha(currentColor, 0.05);
}

.resolution-row.disabled-resolution .dpi-label {
    opacity: 0.45;
    text-decoration-line: line-through;
}

.dpi-label {
    font-weight: 600;
    font-size: 14px;
    font-feature-settings: "tnum";
}

/* Badges */
.status-badge {
    font-size: 10px;
    font-weight: 600;
    padding: 2px 8px;
    border-radius: 10px;
}

.active-badge {
    background-color: alpha(#2ec27e, 0.2);
    color: #2ec27e;
}

.shift-badge {
    background-color: alpha(#3584e4, 0.2);
    color: #3584e4;
}

/* Device map */
.mouse-map {
    min-width: 240px;
}

.button-label {
    font-size: 12px;
    padding: 2px 8px;
    border-left: 3px solid #3584e4;
}

/* Empty State */
.empty-state-icon {
    opacity: 0.4;
}

/* Inactive Profile Notice */
.profile-bar {
    padding: 8px 12px;
    border-radius: 8px;
    background-color: alpha(@accent_bg_color, 0.12);
}

/* Status Bar */
.status-bar {
    border-top: 1px solid alpha(currentColor, 0.15);
    padding: 6px 12px;
    opacity: 0.8;
}

/* List styling - transparent to inherit theme background */
list.resolutions-list {
    background-color: transparent;
}

/* Flat button */
button.flat {
    background-color: transparent;
}

button.flat:hover {
    background-color: alpha(currentColor, 0.1);
}
`

// LoadStyles installs the application CSS and, if it exists, the user's
// stylesheet at customPath on top of it.
func LoadStyles(customPath string) {
	display := gdk.DisplayGetDefault()
	if display == nil {
		return
	}

	provider := gtk.NewCSSProvider()
	provider.LoadFromString(appCSS)

	gtk.StyleContextAddProviderForDisplay(
		display,
		provider,
		gtk.STYLE_PROVIDER_PRIORITY_APPLICATION,
	)

	if customPath == "" || !common.FileExists(customPath) {
		return
	}

	user := gtk.NewCSSProvider()
	user.LoadFromPath(customPath)
	gtk.StyleContextAddProviderForDisplay(
		display,
		user,
		gtk.STYLE_PROVIDER_PRIORITY_USER,
	)
	common.LogDebug("Loaded custom stylesheet %s", customPath)
}
