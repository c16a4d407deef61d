package ui

import "strings"

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	systemLanguage  string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle        = "app_title"
	KeyHeaderTitle     = "header_title"
	KeySubscribers     = "subscribers"
	KeyStatusIdle      = "status_idle"
	KeyStatusSweeping  = "status_sweeping"
	KeyStatusSleeping  = "status_sleeping"
	KeyStatusStopped   = "status_stopped"
	KeyNextRefresh     = "next_refresh"
	KeyFailedTargets   = "failed_targets"
	KeyAxisTime        = "axis_time"
	KeyAxisViewsLocal  = "axis_views_local"
	KeyAxisViewsGlobal = "axis_views_global"
	KeyFile            = "file"
	KeySettings        = "settings"
	KeyLanguage        = "language"
	KeyExportChart     = "export_chart"
	KeyQuit            = "quit"
	KeySave            = "save"
	KeyCancel          = "cancel"
	KeyBrowse          = "browse"
	KeyShowMarkers     = "show_markers"
	KeyMarkerRadius    = "marker_radius"
	KeyExportDirectory = "export_directory"
	KeyChartSettings   = "chart_settings"
	KeyUISettings      = "ui_settings"
	KeySettingsSaved   = "settings_saved"
	KeyExportDone      = "export_done"
	KeyExportFailed    = "export_failed"
	KeyNoChartData     = "no_chart_data"
)

// Supported languages
const (
	LangSystem  = "system"
	LangEnglish = "en"
	LangItalian = "it"
	LangRussian = "ru"
)

// NewLocalization creates a new localization manager. systemLocale is the
// configured locale used when the user picks "system".
func NewLocalization(systemLocale string) *Localization {
	l := &Localization{
		currentLanguage: LangEnglish,
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	l.systemLanguage = l.baseLanguage(systemLocale)
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == LangSystem {
		lang = l.systemLanguage
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts[LangEnglish]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		LangEnglish: "English",
		LangItalian: "Italiano",
		LangRussian: "Русский",
	}
}

// baseLanguage maps a locale such as "it-IT" to a supported language code
func (l *Localization) baseLanguage(locale string) string {
	base, _, _ := strings.Cut(strings.ToLower(locale), "-")
	base, _, _ = strings.Cut(base, "_")
	if _, ok := l.texts[base]; ok {
		return base
	}
	return LangEnglish
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts[LangEnglish] = map[string]string{
		KeyAppTitle:        "YouTube Live Stats",
		KeyHeaderTitle:     "YOUTUBE LIVE MONITOR",
		KeySubscribers:     "SUBSCRIBERS:",
		KeyStatusIdle:      "Starting",
		KeyStatusSweeping:  "Updating",
		KeyStatusSleeping:  "Waiting",
		KeyStatusStopped:   "Stopped",
		KeyNextRefresh:     "next",
		KeyFailedTargets:   "failed",
		KeyAxisTime:        "TIME (latest readings) -->",
		KeyAxisViewsLocal:  "VIEWS (relative scale)",
		KeyAxisViewsGlobal: "VIEWS (shared scale)",
		KeyFile:            "File",
		KeySettings:        "Settings",
		KeyLanguage:        "Language",
		KeyExportChart:     "Export chart…",
		KeyQuit:            "Quit",
		KeySave:            "Save",
		KeyCancel:          "Cancel",
		KeyBrowse:          "Browse",
		KeyShowMarkers:     "Show point markers",
		KeyMarkerRadius:    "Marker radius (1-6)",
		KeyExportDirectory: "Export Directory",
		KeyChartSettings:   "Chart Settings",
		KeyUISettings:      "Interface Settings",
		KeySettingsSaved:   "Settings saved successfully!",
		KeyExportDone:      "Chart exported",
		KeyExportFailed:    "Chart export failed",
		KeyNoChartData:     "Not enough data to draw a chart yet.",
	}

	// Italian texts
	l.texts[LangItalian] = map[string]string{
		KeyAppTitle:        "YouTube Live Stats",
		KeyHeaderTitle:     "YOUTUBE LIVE MONITOR",
		KeySubscribers:     "ISCRITTI:",
		KeyStatusIdle:      "Avvio",
		KeyStatusSweeping:  "Aggiornamento",
		KeyStatusSleeping:  "In attesa",
		KeyStatusStopped:   "Fermo",
		KeyNextRefresh:     "prossimo",
		KeyFailedTargets:   "falliti",
		KeyAxisTime:        "TEMPO (ultime rilevazioni) -->",
		KeyAxisViewsLocal:  "VISUALIZZAZIONI (scala relativa)",
		KeyAxisViewsGlobal: "VISUALIZZAZIONI (scala comune)",
		KeyFile:            "File",
		KeySettings:        "Impostazioni",
		KeyLanguage:        "Lingua",
		KeyExportChart:     "Esporta grafico…",
		KeyQuit:            "Esci",
		KeySave:            "Salva",
		KeyCancel:          "Annulla",
		KeyBrowse:          "Sfoglia",
		KeyShowMarkers:     "Mostra i punti",
		KeyMarkerRadius:    "Raggio dei punti (1-6)",
		KeyExportDirectory: "Cartella di esportazione",
		KeyChartSettings:   "Impostazioni grafico",
		KeyUISettings:      "Impostazioni interfaccia",
		KeySettingsSaved:   "Impostazioni salvate!",
		KeyExportDone:      "Grafico esportato",
		KeyExportFailed:    "Esportazione del grafico non riuscita",
		KeyNoChartData:     "Dati insufficienti per disegnare il grafico.",
	}

	// Russian texts
	l.texts[LangRussian] = map[string]string{
		KeyAppTitle:        "YouTube Live Stats",
		KeyHeaderTitle:     "YOUTUBE LIVE MONITOR",
		KeySubscribers:     "ПОДПИСЧИКИ:",
		KeyStatusIdle:      "Запуск",
		KeyStatusSweeping:  "Обновление",
		KeyStatusSleeping:  "Ожидание",
		KeyStatusStopped:   "Остановлен",
		KeyNextRefresh:     "далее",
		KeyFailedTargets:   "ошибок",
		KeyAxisTime:        "ВРЕМЯ (последние замеры) -->",
		KeyAxisViewsLocal:  "ПРОСМОТРЫ (относительная шкала)",
		KeyAxisViewsGlobal: "ПРОСМОТРЫ (общая шкала)",
		KeyFile:            "Файл",
		KeySettings:        "Настройки",
		KeyLanguage:        "Язык",
		KeyExportChart:     "Экспорт графика…",
		KeyQuit:            "Выход",
		KeySave:            "Сохранить",
		KeyCancel:          "Отмена",
		KeyBrowse:          "Обзор",
		KeyShowMarkers:     "Показывать точки",
		KeyMarkerRadius:    "Радиус точек (1-6)",
		KeyExportDirectory: "Папка экспорта",
		KeyChartSettings:   "Настройки графика",
		KeyUISettings:      "Настройки интерфейса",
		KeySettingsSaved:   "Настройки сохранены!",
		KeyExportDone:      "График экспортирован",
		KeyExportFailed:    "Не удалось экспортировать график",
		KeyNoChartData:     "Пока недостаточно данных для графика.",
	}
}
