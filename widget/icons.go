package widget

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"github.com/asklund/fyne-rowtable/rowtable"
)

// IconFactory resolves an icon description from a row attribute into a
// renderable resource. Implementations may consult the theme, the
// filesystem or an asset bundle. Returning a nil resource with a nil
// error means no icon.
type IconFactory interface {
	Resolve(icon *rowtable.Icon) (fyne.Resource, error)
}

// ThemeIconFactory maps symbolic icon names onto the current theme's
// icon set and falls back to loading image files from Icon.Path. It is
// the factory used when Config.IconFactory is nil.
type ThemeIconFactory struct{}

var _ IconFactory = ThemeIconFactory{}

// Resolve implements IconFactory.
func (ThemeIconFactory) Resolve(icon *rowtable.Icon) (fyne.Resource, error) {
	if icon == nil {
		return nil, nil
	}
	if icon.Name != "" {
		if res := themeIconByName(icon.Name); res != nil {
			return res, nil
		}
	}
	if icon.Path != "" {
		return fyne.LoadResourceFromPath(icon.Path)
	}
	return nil, nil
}

func themeIconByName(name string) fyne.Resource {
	switch name {
	case "file":
		return theme.FileIcon()
	case "folder":
		return theme.FolderIcon()
	case "folder-open":
		return theme.FolderOpenIcon()
	case "document":
		return theme.DocumentIcon()
	case "info":
		return theme.InfoIcon()
	case "warning":
		return theme.WarningIcon()
	case "error":
		return theme.ErrorIcon()
	case "question":
		return theme.QuestionIcon()
	case "confirm":
		return theme.ConfirmIcon()
	case "cancel":
		return theme.CancelIcon()
	case "search":
		return theme.SearchIcon()
	case "settings":
		return theme.SettingsIcon()
	case "storage":
		return theme.StorageIcon()
	case "computer":
		return theme.ComputerIcon()
	case "download":
		return theme.DownloadIcon()
	case "upload":
		return theme.UploadIcon()
	case "account":
		return theme.AccountIcon()
	case "home":
		return theme.HomeIcon()
	case "history":
		return theme.HistoryIcon()
	case "mail":
		return theme.MailComposeIcon()
	default:
		return nil
	}
}
