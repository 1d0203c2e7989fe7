// Package i18n translates the user-facing messages of the rental BFF.
package i18n

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultLocale is the default language locale (English).
	DefaultLocale = "en"
	// AcceptLanguageHeader is the HTTP header name for language preference.
	AcceptLanguageHeader = "Accept-Language"
)

var (
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator handles message translation for different locales.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator creates a new translator with the default messages.
func NewTranslator() *Translator {
	return &Translator{
		messages: getDefaultMessages(),
	}
}

// GetTranslator returns the default singleton translator instance.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Supports reports whether locale has its own messages.
func (t *Translator) Supports(locale string) bool {
	_, ok := t.messages[locale]
	return ok
}

// Translate returns the message for key in locale, falling back to
// DefaultLocale and then to the key itself.
func (t *Translator) Translate(key, locale string) string {
	if msg, ok := t.messages[locale][key]; ok {
		return msg
	}
	if msg, ok := t.messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// GetLocale picks the first supported language of the Accept-Language
// header, ignoring region subtags.
func GetLocale(c *gin.Context) string {
	acceptLang := c.GetHeader(AcceptLanguageHeader)
	if acceptLang == "" {
		return DefaultLocale
	}

	translator := GetTranslator()
	for _, part := range strings.Split(acceptLang, ",") {
		lang := strings.TrimSpace(strings.Split(part, ";")[0])
		if idx := strings.Index(lang, "-"); idx > 0 {
			lang = lang[:idx]
		}
		lang = strings.ToLower(lang)
		if translator.Supports(lang) {
			return lang
		}
	}
	return DefaultLocale
}

func getDefaultMessages() map[string]map[string]string {
	return map[string]map[string]string{
		"en": {
			"error.invalid_request":       "Invalid request",
			"error.invalid_request_body":  "Invalid request body",
			"error.invalid_parameter":     "Invalid query parameter",
			"error.validation":            "Some fields are invalid",
			"error.internal_error":        "An unexpected error occurred",
			"error.unauthorized":          "Unauthorized",
			"error.invalid_credentials":   "Invalid email or password",
			"error.token_required":        "Authentication token is required",
			"error.session_expired":       "Your session has expired, please sign in again",
			"error.verification_required": "Please verify your email address to continue",
			"error.not_found":             "Not found",
			"error.rate_limit_exceeded":   "Too many requests, please try again later",
			"error.conflict":              "Conflict",
			"error.timeout":               "Request timeout",
			"error.upstream":              "The rental API could not be reached",
			"error.service_unavailable":   "Service temporarily unavailable",

			"error.draft.not_found":    "Contract draft not found or expired",
			"error.draft.conflict":     "The contract draft was changed by another request, reload it and try again",
			"error.draft.step_forward": "Use advance to move the contract draft forward",
			"error.draft.last_step":    "The contract draft is already at the last step",
			"error.draft.unknown_step": "Unknown contract draft step",

			"success.logged_out":     "Signed out",
			"success.client_deleted": "Client deleted",
			"success.draft_deleted":  "Contract draft deleted",
		},
		"es": {
			"error.invalid_request":       "Solicitud inválida",
			"error.invalid_request_body":  "Cuerpo de la solicitud inválido",
			"error.invalid_parameter":     "Parámetro de consulta inválido",
			"error.validation":            "Algunos campos son inválidos",
			"error.internal_error":        "Ocurrió un error inesperado",
			"error.unauthorized":          "No autorizado",
			"error.invalid_credentials":   "Email o contraseña incorrectos",
			"error.token_required":        "Se requiere un token de autenticación",
			"error.session_expired":       "Tu sesión expiró, volvé a iniciar sesión",
			"error.verification_required": "Verificá tu dirección de email para continuar",
			"error.not_found":             "No encontrado",
			"error.rate_limit_exceeded":   "Demasiadas solicitudes, intentá de nuevo más tarde",
			"error.conflict":              "Conflicto",
			"error.timeout":               "Tiempo de espera agotado",
			"error.upstream":              "No se pudo contactar la API de alquileres",
			"error.service_unavailable":   "Servicio temporalmente no disponible",

			"error.draft.not_found":    "Borrador de contrato no encontrado o vencido",
			"error.draft.conflict":     "El borrador fue modificado por otra solicitud, recargalo e intentá de nuevo",
			"error.draft.step_forward": "Usá avanzar para mover el borrador al siguiente paso",
			"error.draft.last_step":    "El borrador ya está en el último paso",
			"error.draft.unknown_step": "Paso de borrador desconocido",

			"success.logged_out":     "Sesión cerrada",
			"success.client_deleted": "Cliente eliminado",
			"success.draft_deleted":  "Borrador de contrato eliminado",
		},
	}
}
