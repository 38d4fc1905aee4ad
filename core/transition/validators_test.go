package transition

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/masomo-rollover/core"
)

func TestInitValidators(t *testing.T) {
	validate, translator := core.NewValidator()
	InitValidators(validate, translator)

	tests := []struct {
		name       string
		req        Request
		wantFields map[string]string
	}{
		{
			name: "valid",
			req: Request{SessionID: "s", SourceClassID: "c", Updates: []Update{
				{StudentID: "1", Action: KindPromote, TargetClassID: "c2"},
				{StudentID: "2", Action: KindTransfer},
			}},
		},
		{
			name: "missing target",
			req: Request{SessionID: "s", SourceClassID: "c", Updates: []Update{
				{StudentID: "1", Action: KindTransfer},
				{StudentID: "2", Action: KindRetain},
			}},
			wantFields: map[string]string{"updates[1].targetClassId": "this field is required"},
		},
		{
			name:       "empty batch",
			req:        Request{SessionID: "s", SourceClassID: "c", Updates: []Update{}},
			wantFields: map[string]string{"updates": ""},
		},
		{
			name: "unknown action",
			req: Request{Updates: []Update{
				{StudentID: "1", Action: "expel", TargetClassID: "c"},
			}},
			wantFields: map[string]string{
				"sessionId":         "this field is required",
				"sourceClassId":     "this field is required",
				"updates[0].action": "",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.req)
			if tt.wantFields == nil {
				assert.NoError(t, err)
				return
			}
			var vErr *core.ValidationError
			require.True(t, errors.As(core.TranslateValidationError(err, translator), &vErr))
			got := make(map[string]string, len(vErr.Fields))
			for _, f := range vErr.Fields {
				got[f.Field] = f.Error
				if want, ok := tt.wantFields[f.Field]; ok && want == "" {
					got[f.Field] = "" // default translation, not checked
				}
			}
			assert.Equal(t, tt.wantFields, got)
		})
	}
}
