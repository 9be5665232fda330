package transport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirra-gql/validate/ast"
	"github.com/kirra-gql/validate/schema"
)

func testSchema(t *testing.T) *schema.Schema {
	s, err := schema.New(&schema.Definition{
		Query: &schema.ObjectType{
			Name: "Query",
			Fields: map[string]*schema.FieldDefinition{
				"greeting": {Type: &schema.ScalarType{
					Name: "String",
					ParseLiteral: func(v ast.Value) (interface{}, bool) {
						return v, !ast.IsNull(v)
					},
				}},
			},
		},
	})
	require.NoError(t, err)
	return s
}

func dial(t *testing.T, url string) *websocket.Conn {
	dialer := &websocket.Dialer{HandshakeTimeout: time.Second}
	var conn *websocket.Conn
	for attempts := 0; attempts < 100; attempts++ {
		clientConn, _, err := dialer.Dial("ws"+strings.TrimPrefix(url, "http"), nil)
		if err != nil {
			time.Sleep(time.Millisecond * 10)
			continue
		}
		conn = clientConn
		break
	}
	require.NotNil(t, conn)
	return conn
}

func TestServer_ValidateRoundTrip(t *testing.T) {
	s := testSchema(t)

	server := &Server{
		Schema:            s,
		SchemaFingerprint: "test-schema-v1",
		Cache:             NewResultCache(),
	}

	ts := httptest.NewServer(http.HandlerFunc(server.ServeHTTP))
	defer ts.Close()

	conn := dial(t, ts.URL)
	defer func() {
		assert.NoError(t, conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "closing")))
		conn.Close()
	}()

	validDoc := `{"definitions":[{"kind":"operation","selectionSet":{"kind":"selectionSet","selections":[{"kind":"field","name":{"value":"greeting"}}]}}]}`

	require.NoError(t, conn.WriteJSON(map[string]interface{}{
		"id":      "q1",
		"type":    string(MessageTypeValidate),
		"payload": map[string]interface{}{"document": json.RawMessage(validDoc)},
	}))

	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "q1", msg.Id)
	assert.Equal(t, MessageTypeResult, msg.Type)

	var result ResultPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &result))
	assert.True(t, result.Valid)
	assert.Empty(t, result.Error)

	invalidDoc := `{"definitions":[{"kind":"operation","selectionSet":{"kind":"selectionSet","selections":[{"kind":"field","name":{"value":"bogus"}}]}}]}`

	require.NoError(t, conn.WriteJSON(map[string]interface{}{
		"id":      "q2",
		"type":    string(MessageTypeValidate),
		"payload": map[string]interface{}{"document": json.RawMessage(invalidDoc)},
	}))

	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "q2", msg.Id)
	assert.Equal(t, MessageTypeResult, msg.Type)

	require.NoError(t, json.Unmarshal(msg.Payload, &result))
	assert.False(t, result.Valid)
	assert.Contains(t, result.Error, `Cannot query field "bogus"`)
}

func TestResultCache_HitAvoidsRevalidation(t *testing.T) {
	cache := NewResultCache()

	_, ok, key := cache.Lookup("fp", []byte(`{"a":1}`))
	assert.False(t, ok)
	assert.NotEmpty(t, key)

	cache.Store(key, "")

	message, ok, _ := cache.Lookup("fp", []byte(`{"a":1}`))
	assert.True(t, ok)
	assert.Empty(t, message)

	_, ok, _ = cache.Lookup("fp", []byte(`{"a":2}`))
	assert.False(t, ok)
}
