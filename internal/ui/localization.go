package ui

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2/lang"
)

// Localization manages UI text translations. Keyed texts belong to the UI;
// phrases translate the English strings the model produces (action names,
// stat labels, table headers and cell values).
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
	phrases         map[string]map[string]string
}

// systemLanguage resolves the "system" language setting
var systemLanguage = detectSystemLanguage

// detectSystemLanguage returns the language part of the OS locale, e.g. "pt" for "pt-BR"
func detectSystemLanguage() string {
	locale := lang.SystemLocale().LanguageString()
	code, _, _ := strings.Cut(locale, "-")
	return strings.ToLower(code)
}

// Text keys for localization
const (
	KeyAppTitle         = "app_title"
	KeyAnalytics        = "analytics"
	KeyDeviceManagement = "device_management"
	KeyDeviceDetails    = "device_details"
	KeyClose            = "close"
	KeyReady            = "ready"
	KeySettings         = "settings"
	KeyFile             = "file"
	KeyLanguage         = "language"
	KeySave             = "save"
	KeyCancel           = "cancel"
	KeyStepInterval     = "step_interval"
	KeyChartRefresh     = "chart_refresh"
	KeySettingsApplied  = "settings_applied"
	KeyTaskBusy         = "task_busy"
	KeyTaskFailed       = "task_failed"
	KeyTaskCancelled    = "task_cancelled"
	KeyTaskProcessing   = "task_processing"
	KeyTaskCompleted    = "task_completed"
	KeyTaskQueued       = "task_queued"
	KeyRefreshDevices   = "refresh_devices"
	KeyInterface        = "interface"
	KeySimulation       = "simulation"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
		phrases:         make(map[string]map[string]string),
	}

	l.initializeTexts()
	l.initializePhrases()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		lang = systemLanguage()
		if _, exists := l.texts[lang]; !exists {
			lang = "en"
		}
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// Format returns the localized text for key with args substituted
func (l *Localization) Format(key string, args ...any) string {
	return fmt.Sprintf(l.GetText(key), args...)
}

// Phrase translates an English model string, returning it unchanged when no
// translation exists
func (l *Localization) Phrase(text string) string {
	if phrases, exists := l.phrases[l.currentLanguage]; exists {
		if translated, found := phrases[text]; found {
			return translated
		}
	}
	return text
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
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
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:         "Intune Deployment & Policy Automation Dashboard",
		KeyAnalytics:        "Deployment Analytics",
		KeyDeviceManagement: "Device Management",
		KeyDeviceDetails:    "Device Details",
		KeyClose:            "Close",
		KeyReady:            "Ready",
		KeySettings:         "Settings",
		KeyFile:             "File",
		KeyLanguage:         "Language",
		KeySave:             "Apply",
		KeyCancel:           "Cancel",
		KeyStepInterval:     "Progress Step (ms)",
		KeyChartRefresh:     "Chart Refresh (s)",
		KeySettingsApplied:  "Settings applied for this session",
		KeyTaskBusy:         "Another action is still running, please wait",
		KeyTaskFailed:       "Action could not start",
		KeyTaskCancelled:    "%s cancelled",
		KeyTaskProcessing:   "Processing %s...",
		KeyTaskCompleted:    "%s completed successfully!",
		KeyTaskQueued:       "%s queued, waiting for a free slot",
		KeyRefreshDevices:   "Refresh Devices",
		KeyInterface:        "Interface",
		KeySimulation:       "Simulation",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:         "Панель развертывания и политик Intune",
		KeyAnalytics:        "Аналитика развертывания",
		KeyDeviceManagement: "Управление устройствами",
		KeyDeviceDetails:    "Сведения об устройстве",
		KeyClose:            "Закрыть",
		KeyReady:            "Готово",
		KeySettings:         "Настройки",
		KeyFile:             "Файл",
		KeyLanguage:         "Язык",
		KeySave:             "Применить",
		KeyCancel:           "Отмена",
		KeyStepInterval:     "Шаг прогресса (мс)",
		KeyChartRefresh:     "Обновление диаграммы (с)",
		KeySettingsApplied:  "Настройки применены до выхода",
		KeyTaskBusy:         "Другое действие еще выполняется, подождите",
		KeyTaskFailed:       "Не удалось запустить действие",
		KeyTaskCancelled:    "%s: отменено",
		KeyTaskProcessing:   "Выполняется: %s...",
		KeyTaskCompleted:    "%s: успешно завершено!",
		KeyTaskQueued:       "%s: в очереди, ожидание свободного слота",
		KeyRefreshDevices:   "Обновить устройства",
		KeyInterface:        "Интерфейс",
		KeySimulation:       "Симуляция",
	}

	// Portuguese texts
	l.texts["pt"] = map[string]string{
		KeyAppTitle:         "Painel de Implantação e Políticas do Intune",
		KeyAnalytics:        "Análise de Implantação",
		KeyDeviceManagement: "Gerenciamento de Dispositivos",
		KeyDeviceDetails:    "Detalhes do Dispositivo",
		KeyClose:            "Fechar",
		KeyReady:            "Pronto",
		KeySettings:         "Configurações",
		KeyFile:             "Arquivo",
		KeyLanguage:         "Idioma",
		KeySave:             "Aplicar",
		KeyCancel:           "Cancelar",
		KeyStepInterval:     "Passo de Progresso (ms)",
		KeyChartRefresh:     "Atualização do Gráfico (s)",
		KeySettingsApplied:  "Configurações aplicadas nesta sessão",
		KeyTaskBusy:         "Outra ação ainda está em execução, aguarde",
		KeyTaskFailed:       "Não foi possível iniciar a ação",
		KeyTaskCancelled:    "%s cancelada",
		KeyTaskProcessing:   "Processando %s...",
		KeyTaskCompleted:    "%s concluída com sucesso!",
		KeyTaskQueued:       "%s na fila, aguardando um espaço livre",
		KeyRefreshDevices:   "Atualizar Dispositivos",
		KeyInterface:        "Interface",
		KeySimulation:       "Simulação",
	}
}

// initializePhrases initializes translations of model strings
func (l *Localization) initializePhrases() {
	l.phrases["ru"] = map[string]string{
		// Stat cards
		"Total Devices":      "Всего устройств",
		"Compliance Rate":    "Уровень соответствия",
		"Autopilot Enrolled": "Зарегистрировано в Autopilot",
		"Policies Applied":   "Применено политик",

		// Device table and details
		"Device ID":     "ID устройства",
		"User":          "Пользователь",
		"Compliance":    "Соответствие",
		"Last Check-in": "Последняя синхронизация",
		"Status":        "Статус",
		"Compliant":     "Соответствует",
		"Non-compliant": "Не соответствует",
		"Active":        "Активно",
		"OS":            "ОС",
		"Intune Policy": "Политика Intune",
		"Applied":       "Применена",

		// Actions
		"Run Autopilot Sync": "Синхронизация Autopilot",
		"Apply Policies":     "Применить политики",
		"Check Compliance":   "Проверить соответствие",
		"Generate Report":    "Создать отчет",
		"Autopilot Sync":     "Синхронизация Autopilot",
		"Policy Application": "Применение политик",
		"Compliance Check":   "Проверка соответствия",
		"Report Generation":  "Формирование отчета",
		"Success":            "Успешно",
	}

	l.phrases["pt"] = map[string]string{
		// Stat cards
		"Total Devices":      "Total de Dispositivos",
		"Compliance Rate":    "Taxa de Conformidade",
		"Autopilot Enrolled": "Registrados no Autopilot",
		"Policies Applied":   "Políticas Aplicadas",

		// Device table and details
		"Device ID":     "ID do Dispositivo",
		"User":          "Usuário",
		"Compliance":    "Conformidade",
		"Last Check-in": "Último Check-in",
		"Status":        "Status",
		"Compliant":     "Conforme",
		"Non-compliant": "Não conforme",
		"Active":        "Ativo",
		"OS":            "SO",
		"Intune Policy": "Política do Intune",
		"Applied":       "Aplicada",

		// Actions
		"Run Autopilot Sync": "Executar Sincronização Autopilot",
		"Apply Policies":     "Aplicar Políticas",
		"Check Compliance":   "Verificar Conformidade",
		"Generate Report":    "Gerar Relatório",
		"Autopilot Sync":     "Sincronização Autopilot",
		"Policy Application": "Aplicação de Políticas",
		"Compliance Check":   "Verificação de Conformidade",
		"Report Generation":  "Geração de Relatório",
		"Success":            "Sucesso",
	}
}
