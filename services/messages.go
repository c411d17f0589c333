package services

// User-facing messages are in Turkish, the language of the sales team.
const (
	MsgServerError      = "Sunucu hatası"
	MsgValidationFailed = "Validasyon hatası"
	MsgInvalidData      = "Geçersiz veri"
	MsgInvalidField     = "%s alanı geçersiz"
	MsgInvalidDate      = "Geçersiz tarih formatı. YYYY-MM-DD veya ISO 8601 kullanın."
	MsgMalformedBody    = "İstek gövdesi geçerli bir JSON değil"

	MsgCustomerNotFound = "Müşteri bulunamadı"
	MsgCustomerDeleted  = "Müşteri başarıyla silindi"

	MsgProductNotFound     = "Ürün bulunamadı"
	MsgProductDeleted      = "Ürün başarıyla silindi"
	MsgSomeProductsMissing = "Bazı ürünler bulunamadı"

	MsgVisitNotFound      = "Ziyaret kaydı bulunamadı"
	MsgVisitDeleted       = "Ziyaret kaydı başarıyla silindi"
	MsgInvalidVisitStatus = "Geçersiz ziyaret durumu. Sadece \"scheduled\", \"completed\" veya \"cancelled\" olabilir."
	MsgRolloverDone       = "Otomatik ziyaret yönetimi başarıyla çalıştırıldı"
	MsgRolloverFailed     = "Otomatik ziyaret yönetimi sırasında hata oluştu"

	MsgSuggestionNotFound        = "Öneri bulunamadı"
	MsgSuggestionDeleted         = "Öneri başarıyla silindi"
	MsgSuggestionAlreadyAnswered = "Bu öneri zaten yanıtlanmış"
	MsgInvalidSuggestionStatus   = "Geçersiz durum. Sadece \"accepted\" veya \"rejected\" olabilir."
	MsgInvalidStatusFilter       = "Geçersiz durum filtresi. Sadece \"pending\", \"accepted\" veya \"rejected\" olabilir."
	MsgSomeCustomersMissing      = "Bazı müşteriler bulunamadı"
	MsgProductIDsRequired        = "En az bir ürün ID'si gönderilmelidir"
	MsgCustomerIDsRequired       = "En az bir müşteri ID'si gönderilmelidir"
)
