package chat

import (
	"encoding/json"
	"testing"
)

func TestEventRoundTrip(t *testing.T) {
	ev, err := NewEvent(ChannelMembership, ActionJoined, "R_1", "U_1", MembershipPayload{
		UserUuid:         "U_1",
		DisplayName:      "alice",
		ParticipantCount: 3,
	})
	if err != nil {
		t.Fatalf("NewEvent: %v", err)
	}

	data, err := ev.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded Event
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.Channel != ChannelMembership || decoded.Action != ActionJoined {
		t.Errorf("channel/action = %s/%s", decoded.Channel, decoded.Action)
	}
	if decoded.RoomUuid != "R_1" || decoded.SendId != "U_1" {
		t.Errorf("room/sender = %s/%s", decoded.RoomUuid, decoded.SendId)
	}

	var payload MembershipPayload
	if err := json.Unmarshal(decoded.Payload, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload.ParticipantCount != 3 || payload.DisplayName != "alice" {
		t.Errorf("payload = %+v", payload)
	}
}

func TestPublishEventWithoutBroker(t *testing.T) {
	old := GlobalBroker
	GlobalBroker = nil
	defer func() { GlobalBroker = old }()

	// Broker 未初始化时广播静默跳过，不报错
	if err := PublishEvent(ctx, ChannelActivity, ActionPlay, "R_1", "U_1", struct{}{}); err != nil {
		t.Fatalf("PublishEvent without broker: %v", err)
	}
}
