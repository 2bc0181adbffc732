package gmail

import (
	"bytes"
	"encoding/base64"
	"mime"
	"net/mail"
)

// encodeHeader кодирует значение заголовка по RFC 2047, если в нем есть не-ASCII символы
func encodeHeader(value string) string {
	return mime.BEncoding.Encode("UTF-8", value)
}

// buildMessage собирает письмо в формате RFC 2822 с HTML телом
func buildMessage(from, to mail.Address, subject, htmlBody string) []byte {
	var buf bytes.Buffer

	writeHeader := func(name, value string) {
		buf.WriteString(name)
		buf.WriteString(": ")
		buf.WriteString(value)
		buf.WriteString("\r\n")
	}

	writeHeader("From", from.String())
	writeHeader("To", to.String())
	writeHeader("Subject", encodeHeader(subject))
	writeHeader("MIME-Version", "1.0")
	writeHeader("Content-Type", "text/html; charset=utf-8")
	buf.WriteString("\r\n")
	buf.WriteString(htmlBody)

	return buf.Bytes()
}

// encodeRaw кодирует письмо для поля raw Gmail API: base64url без выравнивания
func encodeRaw(message []byte) string {
	return base64.RawURLEncoding.EncodeToString(message)
}
