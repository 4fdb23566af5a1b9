// Package i18n traduce los mensajes de cara al cliente (inglés y urdu) con golang.org/x/text.
// Las claves del catálogo son el texto en inglés; una clave sin traducción se devuelve tal cual.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Idiomas soportados (códigos de preferred_language).
const (
	English = "en"
	Urdu    = "ur"
)

var (
	supported = []language.Tag{language.English, language.Urdu}
	codes     = []string{English, Urdu}
	matcher   = language.NewMatcher(supported)
	cat       = build()
)

var urdu = map[string]string{
	// validación de campos
	"This field is required.":                           "یہ فیلڈ درکار ہے۔",
	"Enter a valid email address.":                      "درست ای میل ایڈریس درج کریں۔",
	"Ensure this field has at least %d characters.":     "یقینی بنائیں کہ اس فیلڈ میں کم از کم %d حروف ہوں۔",
	"Ensure this field has no more than %d characters.": "یقینی بنائیں کہ اس فیلڈ میں %d سے زیادہ حروف نہ ہوں۔",
	"\"%s\" is not a valid choice.":                     "\"%s\" درست انتخاب نہیں ہے۔",
	"Date has wrong format. Use YYYY-MM-DD.":            "تاریخ کی شکل غلط ہے۔ YYYY-MM-DD استعمال کریں۔",
	"Invalid value.":                                    "غلط قدر۔",
	"Ensure this value is greater than or equal to 0.":  "یقینی بنائیں کہ یہ قدر 0 یا اس سے زیادہ ہو۔",
	"Passwords do not match.":                           "پاس ورڈ مماثل نہیں ہیں۔",
	"A user with that email already exists.":            "اس ای میل کے ساتھ صارف پہلے سے موجود ہے۔",
	"Employees must have an employer.":                  "ملازمین کا ایک آجر ہونا ضروری ہے۔",
	"Employees cannot be farm owners.":                  "ملازمین فارم کے مالک نہیں ہو سکتے۔",
	"Farm owners cannot have employers.":                "فارم کے مالکان کے آجر نہیں ہو سکتے۔",
	"Invalid employer.":                                 "غلط آجر۔",
	"Employers cannot themselves be employees.":         "آجر خود ملازم نہیں ہو سکتے۔",
	"An account cannot be its own employer.":            "کوئی اکاؤنٹ اپنا ہی آجر نہیں ہو سکتا۔",
	"Malformed request body.":                           "درخواست کا مواد درست نہیں ہے۔",
	"Invalid query parameters.":                         "سوال کے پیرامیٹر درست نہیں ہیں۔",

	// autorización
	"You do not have permission to perform this action.":  "آپ کو یہ کارروائی کرنے کی اجازت نہیں ہے۔",
	"You do not have permission to manage employees.":     "آپ کو ملازمین کا انتظام کرنے کی اجازت نہیں ہے۔",
	"You do not have permission to view reports.":         "آپ کو رپورٹس دیکھنے کی اجازت نہیں ہے۔",
	"Employees cannot manage their own employees.":        "ملازمین اپنے ملازمین کا انتظام نہیں کر سکتے۔",
	"Authentication credentials were not provided.":       "تصدیقی اسناد فراہم نہیں کی گئیں۔",
	"Given token not valid.":                              "دیا گیا ٹوکن درست نہیں ہے۔",
	"No active account found with the given credentials.": "دی گئی اسناد کے ساتھ کوئی فعال اکاؤنٹ نہیں ملا۔",
	"User account is disabled.":                           "صارف کا اکاؤنٹ غیر فعال ہے۔",

	// genéricos
	"Not found.":               "نہیں ملا۔",
	"Employee not found.":      "ملازم نہیں ملا۔",
	"Request was throttled.":   "درخواست محدود کر دی گئی۔",
	"A server error occurred.": "سرور میں خرابی پیش آئی۔",
	"Invalid input.":           "غلط ان پٹ۔",
}

func build() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, msg := range urdu {
		// SetString solo falla con tags o mensajes mal formados.
		_ = b.SetString(language.Urdu, key, msg)
	}
	return b
}

// Match elige el idioma soportado más cercano a las preferencias dadas, en orden
// (preferred_language, cabecera Accept-Language, ...). Por defecto inglés.
func Match(prefs ...string) string {
	for _, p := range prefs {
		if p == "" {
			continue
		}
		tags, _, err := language.ParseAcceptLanguage(p)
		if err != nil || len(tags) == 0 {
			continue
		}
		if _, idx, conf := matcher.Match(tags...); conf != language.No {
			return codes[idx]
		}
	}
	return English
}

// Printer formatea y traduce mensajes en un idioma.
type Printer struct {
	p    *message.Printer
	lang string
}

// NewPrinter printer para lang ("en" | "ur"); cualquier otro valor usa inglés.
func NewPrinter(lang string) *Printer {
	tag := language.English
	if lang == Urdu {
		tag = language.Urdu
	} else {
		lang = English
	}
	return &Printer{p: message.NewPrinter(tag, message.Catalog(cat)), lang: lang}
}

// Lang código del idioma del printer.
func (p *Printer) Lang() string { return p.lang }

// T traduce key y aplica args. Firma compatible con domain.ValidationError.Fields.
func (p *Printer) T(key string, args ...any) string {
	return p.p.Sprintf(key, args...)
}
