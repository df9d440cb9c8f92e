package errors

import (
	"sync"
	"time"
)

// TUIHandler stores messages for the TUI to render.
type TUIHandler struct {
	mu       sync.RWMutex
	messages []Message
	onError  func(msg Message)
}

var _ ErrorHandler = (*TUIHandler)(nil)

type Message struct {
	Text      string
	Type      MessageType
	Timestamp time.Time
}

type MessageType int

const (
	MessageTypeError MessageType = iota
	MessageTypeWarning
	MessageTypeInfo
	MessageTypeSuccess
	MessageTypePlain
)

// NewTUIHandler creates a handler. onError, if set, is called for every
// stored message of type MessageTypeError.
func NewTUIHandler(onError func(msg Message)) *TUIHandler {
	return &TUIHandler{onError: onError}
}

func (h *TUIHandler) Error(msg string)   { h.addMessage(msg, MessageTypeError) }
func (h *TUIHandler) Warning(msg string) { h.addMessage(msg, MessageTypeWarning) }
func (h *TUIHandler) Info(msg string)    { h.addMessage(msg, MessageTypeInfo) }
func (h *TUIHandler) Success(msg string) { h.addMessage(msg, MessageTypeSuccess) }
func (h *TUIHandler) Plain(msg string)   { h.addMessage(msg, MessageTypePlain) }

func (h *TUIHandler) addMessage(msg string, msgType MessageType) {
	message := Message{Text: msg, Type: msgType, Timestamp: time.Now()}
	h.mu.Lock()
	h.messages = append(h.messages, message)
	h.mu.Unlock()

	if msgType == MessageTypeError && h.onError != nil {
		h.onError(message)
	}
}

func (h *TUIHandler) GetLatest() (Message, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.messages) == 0 {
		return Message{}, false
	}
	return h.messages[len(h.messages)-1], true
}

// Drain returns all stored messages and clears the store.
func (h *TUIHandler) Drain() []Message {
	h.mu.Lock()
	defer h.mu.Unlock()
	drained := h.messages
	h.messages = nil
	return drained
}

func (h *TUIHandler) GetAll() []Message {
	h.mu.RLock()
	defer h.mu.RUnlock()
	copied := make([]Message, len(h.messages))
	copy(copied, h.messages)
	return copied
}
