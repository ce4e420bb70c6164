package testutil

import (
	"fmt"

	tele "gopkg.in/telebot.v3"
)

// FakeContext is a tele.Context that records what handlers send.
// Methods not overridden here panic through the nil embedded interface.
type FakeContext struct {
	tele.Context

	User      *tele.User
	CB        *tele.Callback
	MsgText   string
	Sent      []string
	Edited    []string
	Responses []*tele.CallbackResponse

	// EditErr is returned from Edit when set
	EditErr error
}

// NewFakeMessage creates a context for a text message from userID
func NewFakeMessage(userID int64, text string) *FakeContext {
	return &FakeContext{User: &tele.User{ID: userID}, MsgText: text}
}

// NewFakeCallback creates a context for a button press from userID
func NewFakeCallback(userID int64, data string) *FakeContext {
	return &FakeContext{
		User: &tele.User{ID: userID},
		CB:   &tele.Callback{ID: "cb-1", Data: data},
	}
}

func (c *FakeContext) Sender() *tele.User {
	return c.User
}

func (c *FakeContext) Callback() *tele.Callback {
	return c.CB
}

func (c *FakeContext) Text() string {
	return c.MsgText
}

func (c *FakeContext) Send(what interface{}, _ ...interface{}) error {
	c.Sent = append(c.Sent, fmt.Sprint(what))
	return nil
}

func (c *FakeContext) Edit(what interface{}, _ ...interface{}) error {
	if c.EditErr != nil {
		return c.EditErr
	}
	c.Edited = append(c.Edited, fmt.Sprint(what))
	return nil
}

func (c *FakeContext) Respond(resp ...*tele.CallbackResponse) error {
	if len(resp) == 0 {
		c.Responses = append(c.Responses, &tele.CallbackResponse{})
		return nil
	}
	c.Responses = append(c.Responses, resp[0])
	return nil
}

// LastSent returns the most recent sent message or ""
func (c *FakeContext) LastSent() string {
	if len(c.Sent) == 0 {
		return ""
	}
	return c.Sent[len(c.Sent)-1]
}

// LastResponse returns the most recent callback response or nil
func (c *FakeContext) LastResponse() *tele.CallbackResponse {
	if len(c.Responses) == 0 {
		return nil
	}
	return c.Responses[len(c.Responses)-1]
}
