package client

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// envelope is the response body shape every API endpoint shares.
type envelope struct {
	Success *bool           `json:"success"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	File    json.RawMessage `json:"file"`
	Token   string          `json:"token"`
	Admin   json.RawMessage `json:"admin"`
}

// Payload is the success half of a request result.
type Payload struct {
	Status  int
	Message string
	Token   string
	data    json.RawMessage
	file    json.RawMessage
	admin   json.RawMessage
}

// Decode unmarshals the data member into v.
// An absent data member leaves v untouched.
func (p *Payload) Decode(v any) error {
	return decodeMember("data", p.data, v)
}

// DecodeFile unmarshals the file member of an upload response into v.
func (p *Payload) DecodeFile(v any) error {
	return decodeMember("file", p.file, v)
}

// DecodeAdmin unmarshals the admin member of a session response into v.
// Servers that nest the admin profile under data are also accepted.
func (p *Payload) DecodeAdmin(v any) error {
	if len(p.admin) == 0 {
		return p.Decode(v)
	}
	return decodeMember("admin", p.admin, v)
}

// HasData reports whether the response carried a data member.
func (p *Payload) HasData() bool {
	return len(p.data) > 0 && string(p.data) != "null"
}

func decodeMember(name string, raw json.RawMessage, v any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// decode turns a transport response into a Payload or an Error.
// It is the only place the success/error members are inspected.
func decode(status int, body []byte) (*Payload, error) {
	if status == http.StatusNoContent {
		return &Payload{Status: status}, nil
	}

	var env envelope
	parseErr := json.Unmarshal(body, &env)
	ok2xx := status >= 200 && status < 300

	if parseErr != nil {
		return nil, transportError(status, fmt.Errorf("decode response: %w", parseErr))
	}

	failed := (env.Success != nil && !*env.Success) || !ok2xx
	if failed {
		msg := env.Error
		if msg == "" {
			msg = env.Message
		}
		if msg == "" && env.Success == nil {
			return nil, transportError(status, fmt.Errorf("unexpected status %d", status))
		}
		if msg == "" {
			msg = "Request failed"
		}
		return nil, &Error{
			Kind:    KindServer,
			Message: msg,
			Status:  status,
		}
	}

	if env.Success == nil {
		return nil, transportError(status, fmt.Errorf("response missing success flag"))
	}

	return &Payload{
		Status:  status,
		Message: env.Message,
		Token:   env.Token,
		data:    env.Data,
		file:    env.File,
		admin:   env.Admin,
	}, nil
}
