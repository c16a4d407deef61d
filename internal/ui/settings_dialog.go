package ui

import (
	"sort"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/yt-monitor/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// language display name -> code
	languageCodes map[string]string

	// UI components
	languageSelect *widget.Select
	markersCheck   *widget.Check
	radiusEntry    *widget.Entry
	exportDirEntry *widget.Entry
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:      settings,
		localization:  localization,
		window:        window,
		onSaved:       onSaved,
		languageCodes: make(map[string]string),
	}

	sd.createUI()
	return sd
}

// ShowSettingsDialog builds and shows the settings dialog
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, localization *Localization, onSaved func()) {
	NewSettingsDialog(settings, localization, window, onSaved).Show()
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	l := sd.localization

	// Language selection
	languageOptions := []string{}
	for code, name := range sd.settings.GetLanguageOptions() {
		sd.languageCodes[name] = code
		languageOptions = append(languageOptions, name)
	}
	sort.Strings(languageOptions)
	sd.languageSelect = widget.NewSelect(languageOptions, nil)

	// Chart markers
	sd.markersCheck = widget.NewCheck(l.GetText(KeyShowMarkers), nil)
	sd.radiusEntry = widget.NewEntry()
	sd.radiusEntry.SetPlaceHolder(strconv.Itoa(config.MinMarkerRadius) + "-" + strconv.Itoa(config.MaxMarkerRadius))

	// Export directory selection
	sd.exportDirEntry = widget.NewEntry()
	browseDirBtn := widget.NewButton(l.GetText(KeyBrowse), sd.onBrowseDirectory)
	exportDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.exportDirEntry)

	form := container.NewVBox(
		widget.NewLabel(l.GetText(KeyChartSettings)),
		widget.NewSeparator(),

		sd.markersCheck,
		widget.NewLabel(l.GetText(KeyMarkerRadius)+":"),
		sd.radiusEntry,

		widget.NewLabel(l.GetText(KeyExportDirectory)+":"),
		exportDirRow,

		widget.NewSeparator(),
		widget.NewLabel(l.GetText(KeyUISettings)),
		widget.NewSeparator(),

		widget.NewLabel(l.GetText(KeyLanguage)+":"),
		sd.languageSelect,
	)

	sd.dialog = dialog.NewCustomConfirm(
		l.GetText(KeySettings),
		l.GetText(KeySave),
		l.GetText(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	current := sd.settings.GetLanguage()
	for name, code := range sd.languageCodes {
		if code == current {
			sd.languageSelect.SetSelected(name)
		}
	}
	sd.markersCheck.SetChecked(sd.settings.GetShowMarkers())
	sd.radiusEntry.SetText(strconv.Itoa(sd.settings.GetMarkerRadius()))
	sd.exportDirEntry.SetText(sd.settings.GetExportDirectory())
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.exportDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	if code, ok := sd.languageCodes[sd.languageSelect.Selected]; ok {
		sd.settings.SetLanguage(code)
	}

	sd.settings.SetShowMarkers(sd.markersCheck.Checked)

	// Validate and save marker radius
	if radiusStr := sd.radiusEntry.Text; radiusStr != "" {
		if radius, err := strconv.Atoi(radiusStr); err == nil {
			sd.settings.SetMarkerRadius(radius)
		}
	}

	if dir := sd.exportDirEntry.Text; dir != "" {
		sd.settings.SetExportDirectory(dir)
	}

	if sd.onSaved != nil {
		sd.onSaved()
	}
}
