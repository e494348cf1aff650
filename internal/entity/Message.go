package entity

import "encoding/xml"

// Message is the wire shape of every non-2xx response.
type Message struct {
	XMLName xml.Name `json:"-" xml:"message"`
	Code    int      `json:"code" xml:"code"`
	Message string   `json:"message" xml:"message"`
}

func NewMessage(code int, text string) Message {
	return Message{Code: code, Message: text}
}
