package terminal

import (
	"context"
	"net/url"
)

// BridgeClient talks to the bridge service that holds the vendor SDK and
// exposes each terminal's log over HTTP.
type BridgeClient struct {
	transport *Transport
}

func NewBridgeClient(transport *Transport) *BridgeClient {
	return &BridgeClient{transport: transport}
}

type bridgeResponse[T any] struct {
	Data []T `json:"data"`
}

type bridgeAttendance struct {
	UserID     flexString `json:"user_id"`
	RecordTime string     `json:"record_time"`
	State      *int       `json:"state"`
}

type bridgeUser struct {
	UserID flexString `json:"userId"`
	Name   string     `json:"name"`
}

func devicePath(address, resource string) string {
	return "/devices/" + url.PathEscape(address) + "/" + resource
}

func (c *BridgeClient) FetchAllEvents(ctx context.Context, address string) ([]RawEvent, error) {
	var resp bridgeResponse[bridgeAttendance]
	if err := c.transport.GetJSON(ctx, devicePath(address, "attendances"), nil, &resp); err != nil {
		return nil, err
	}

	events := make([]RawEvent, 0, len(resp.Data))
	for _, a := range resp.Data {
		events = append(events, RawEvent{
			EmployeeCode: string(a.UserID),
			Timestamp:    a.RecordTime,
			RawState:     a.State,
		})
	}
	return events, nil
}

func (c *BridgeClient) FetchAllUsers(ctx context.Context, address string) ([]RawUser, error) {
	var resp bridgeResponse[bridgeUser]
	if err := c.transport.GetJSON(ctx, devicePath(address, "users"), nil, &resp); err != nil {
		return nil, err
	}

	users := make([]RawUser, 0, len(resp.Data))
	for _, u := range resp.Data {
		users = append(users, RawUser{Code: string(u.UserID), Name: u.Name})
	}
	return users, nil
}
