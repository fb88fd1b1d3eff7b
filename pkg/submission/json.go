package submission

import (
	"io"
	"reflect"

	"github.com/bytedance/sonic"
)

var jsonHandler = sonic.Config{
	EscapeHTML:  true,
	SortMapKeys: true,
}.Froze()

type errorBody struct {
	Message string `json:"message"`
}

func init() {
	_ = sonic.Pretouch(reflect.TypeOf(errorBody{}))
}

func marshalPayload(p Payload) ([]byte, error) {
	return jsonHandler.Marshal(p.Map())
}

// maxErrorBody bounds how much of a rejected response is read for its message.
const maxErrorBody = 64 << 10

// errorMessage extracts {"message": "..."} from a rejected response body.
// Anything unreadable, unparseable or empty yields fallback.
func errorMessage(body io.Reader, fallback string) string {
	data, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil || len(data) == 0 {
		return fallback
	}

	var parsed errorBody
	if err := jsonHandler.Unmarshal(data, &parsed); err != nil || parsed.Message == "" {
		return fallback
	}
	return parsed.Message
}
