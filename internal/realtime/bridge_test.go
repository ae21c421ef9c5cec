package realtime

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRedisBridge_Handle(t *testing.T) {
	bridge := NewRedisBridge(nil, zap.NewNop())
	frame := json.RawMessage(`{"event":"task-updated","data":{}}`)

	encode := func(m bridgeMessage) []byte {
		body, err := json.Marshal(m)
		require.NoError(t, err)
		return body
	}

	tests := []struct {
		name    string
		channel string
		body    []byte
		want    bool
	}{
		{
			name:    "성공: 다른 인스턴스의 메시지 전달",
			channel: "board:1",
			body:    encode(bridgeMessage{Origin: "other", Topic: "board:1", Frame: frame}),
			want:    true,
		},
		{
			name:    "실패: 자기 자신이 발행한 메시지 무시",
			channel: "board:1",
			body:    encode(bridgeMessage{Origin: bridge.instance, Topic: "board:1", Frame: frame}),
		},
		{
			name:    "실패: 채널과 토픽 불일치",
			channel: "board:2",
			body:    encode(bridgeMessage{Origin: "other", Topic: "board:1", Frame: frame}),
		},
		{
			name:    "실패: 잘못된 JSON",
			channel: "board:1",
			body:    []byte("{"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			bridge.handle(tt.channel, tt.body, func(topic string, f []byte) {
				got = append(got, topic)
				assert.JSONEq(t, string(frame), string(f))
			})
			if tt.want {
				assert.Equal(t, []string{tt.channel}, got)
			} else {
				assert.Empty(t, got)
			}
		})
	}
}
