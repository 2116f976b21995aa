// Package i18n translates user-facing text for the package form.
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
		messages: defaultMessages,
	}
}

// GetTranslator returns the shared translator.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Translate returns the message for key in locale, falling back to the
// default locale and then to the key itself.
func (t *Translator) Translate(key, locale string) string {
	if msg, ok := t.messages[locale][key]; ok {
		return msg
	}
	if msg, ok := t.messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Locales returns the supported locales.
func (t *Translator) Locales() []string {
	out := make([]string, 0, len(t.messages))
	for l := range t.messages {
		out = append(out, l)
	}
	return out
}

// Supported reports whether locale has a message table.
func Supported(locale string) bool {
	_, ok := defaultMessages[locale]
	return ok
}

// GetLocale picks the first supported language from the Accept-Language
// header, in the order the client listed them.
func GetLocale(c *gin.Context) string {
	return ParseAcceptLanguage(c.GetHeader(AcceptLanguageHeader))
}

// ParseAcceptLanguage extracts a supported base language such as "pt" from
// a header value like "pt-BR,en;q=0.8".
func ParseAcceptLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		lang := strings.TrimSpace(strings.Split(part, ";")[0])
		if idx := strings.Index(lang, "-"); idx > 0 {
			lang = lang[:idx]
		}
		lang = strings.ToLower(lang)
		if Supported(lang) {
			return lang
		}
	}
	return DefaultLocale
}

var defaultMessages = map[string]map[string]string{
	"en": {
		ErrKeyInvalidRequest:       "Invalid request",
		ErrKeyInvalidRequestBody:   "Invalid request body",
		ErrKeyInternalError:        "An unexpected error occurred",
		ErrKeyNotFound:             "Not found",
		ErrKeyRateLimitExceeded:    "Too many requests, please try again later",
		ErrKeyConflict:             "Conflict",
		ErrKeyTimeout:              "The request took too long",
		ErrKeyIncompleteSelection:  "Select a customer, a warehouse and a package type",
		ErrKeyFormClosed:           "Open the package form first",
		ErrKeySubmitInProgress:     "A submission is already in progress",
		ErrKeyUnknownField:         "Unknown form field",
		ErrKeyUpstreamUnavailable:  "The package service is unavailable",
		ErrKeyIdempotencyInFlight:  "A request with this Idempotency-Key is still being processed",
		ErrKeyIdempotencyKeyTooBig: "Idempotency-Key is too long",

		KeyFormTitle:             "Package Form",
		KeyFormModalLabel:        "Package Form Modal",
		KeyFormOpenButton:        "Store Package",
		KeyFormCustomer:          "Customer:",
		KeyFormWarehouse:         "Warehouse:",
		KeyFormPackageType:       "Package Type:",
		KeyFormSelectCustomer:    "Select a customer",
		KeyFormSelectWarehouse:   "Select a warehouse",
		KeyFormSelectPackageType: "Select a package type",
		KeyFormSubmit:            "Submit",
		KeyFormClose:             "Close",
		KeyFormListLoading:       "Loading…",
		KeyFormListFailed:        "Could not load options",
		KeyFormRefreshTypes:      "Update package types",
	},
	"pt": {
		ErrKeyInvalidRequest:       "Requisição inválida",
		ErrKeyInvalidRequestBody:   "Corpo da requisição inválido",
		ErrKeyInternalError:        "Ocorreu um erro inesperado",
		ErrKeyNotFound:             "Não encontrado",
		ErrKeyRateLimitExceeded:    "Muitas requisições, tente novamente mais tarde",
		ErrKeyConflict:             "Conflito",
		ErrKeyTimeout:              "A requisição demorou demais",
		ErrKeyIncompleteSelection:  "Selecione um cliente, um armazém e um tipo de pacote",
		ErrKeyFormClosed:           "Abra o formulário de pacote primeiro",
		ErrKeySubmitInProgress:     "Um envio já está em andamento",
		ErrKeyUnknownField:         "Campo de formulário desconhecido",
		ErrKeyUpstreamUnavailable:  "O serviço de pacotes está indisponível",
		ErrKeyIdempotencyInFlight:  "Uma requisição com esta Idempotency-Key ainda está em processamento",
		ErrKeyIdempotencyKeyTooBig: "Idempotency-Key é longa demais",

		KeyFormTitle:             "Formulário de Pacote",
		KeyFormModalLabel:        "Janela do Formulário de Pacote",
		KeyFormOpenButton:        "Armazenar Pacote",
		KeyFormCustomer:          "Cliente:",
		KeyFormWarehouse:         "Armazém:",
		KeyFormPackageType:       "Tipo de Pacote:",
		KeyFormSelectCustomer:    "Selecione um cliente",
		KeyFormSelectWarehouse:   "Selecione um armazém",
		KeyFormSelectPackageType: "Selecione um tipo de pacote",
		KeyFormSubmit:            "Enviar",
		KeyFormClose:             "Fechar",
		KeyFormListLoading:       "Carregando…",
		KeyFormListFailed:        "Não foi possível carregar as opções",
		KeyFormRefreshTypes:      "Atualizar tipos de pacote",
	},
	"nl": {
		ErrKeyInvalidRequest:       "Ongeldig verzoek",
		ErrKeyInvalidRequestBody:   "Ongeldige aanvraag body",
		ErrKeyInternalError:        "Er is een onverwachte fout opgetreden",
		ErrKeyNotFound:             "Niet gevonden",
		ErrKeyRateLimitExceeded:    "Te veel verzoeken, probeer het later opnieuw",
		ErrKeyConflict:             "Conflict",
		ErrKeyTimeout:              "Het verzoek duurde te lang",
		ErrKeyIncompleteSelection:  "Kies een klant, een magazijn en een pakkettype",
		ErrKeyFormClosed:           "Open eerst het pakketformulier",
		ErrKeySubmitInProgress:     "Er wordt al een verzending verwerkt",
		ErrKeyUnknownField:         "Onbekend formulierveld",
		ErrKeyUpstreamUnavailable:  "De pakketdienst is niet beschikbaar",
		ErrKeyIdempotencyInFlight:  "Een verzoek met deze Idempotency-Key wordt nog verwerkt",
		ErrKeyIdempotencyKeyTooBig: "Idempotency-Key is te lang",

		KeyFormTitle:             "Pakketformulier",
		KeyFormModalLabel:        "Pakketformulier venster",
		KeyFormOpenButton:        "Pakket opslaan",
		KeyFormCustomer:          "Klant:",
		KeyFormWarehouse:         "Magazijn:",
		KeyFormPackageType:       "Pakkettype:",
		KeyFormSelectCustomer:    "Kies een klant",
		KeyFormSelectWarehouse:   "Kies een magazijn",
		KeyFormSelectPackageType: "Kies een pakkettype",
		KeyFormSubmit:            "Verzenden",
		KeyFormClose:             "Sluiten",
		KeyFormListLoading:       "Laden…",
		KeyFormListFailed:        "Opties konden niet worden geladen",
		KeyFormRefreshTypes:      "Pakkettypes bijwerken",
	},
}
