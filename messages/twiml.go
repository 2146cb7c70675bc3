// Package messages defines the TwiML documents returned to the messaging
// provider in reply to webhook requests.
package messages

import (
	"encoding/xml"
	"fmt"
)

// MessagingResponse is the TwiML document returned to the transport. Each
// entry in Messages becomes one outbound <Message> in order.
type MessagingResponse struct {
	XMLName  xml.Name `xml:"Response"`
	Messages []string `xml:"Message"`
}

// NewMessagingResponse wraps reply texts in a TwiML response.
func NewMessagingResponse(texts ...string) *MessagingResponse {
	return &MessagingResponse{Messages: texts}
}

// Render serializes the response with the XML declaration Twilio expects.
func (m *MessagingResponse) Render() ([]byte, error) {
	body, err := xml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("render twiml: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}
