// Package event holds the fixed record schema and the predicates applied to it:
// category membership, the inclusive time window and the actor allow-list.
// Package event 定义固定的记录结构以及作用于其上的谓词：类别、时间窗口和账户白名单。
package event

import (
	"encoding/xml"
	"strconv"
	"strings"
	"time"

	"github.com/livp123/evtxsift/pkg/errors"
)

// ActorField is the EventData attribute carrying the account a logon event is about.
const ActorField = "TargetUserName"

const (
	// SystemTimeLayout is the textual form emitted by evtx dumpers, e.g. "2024-08-18 13:45:55.479781 UTC".
	SystemTimeLayout = "2006-01-02 15:04:05.999999999 UTC"
	// DateLayout is the form of caller supplied window bounds.
	DateLayout = "2006-01-02"
)

// xmlEvent mirrors the subset of the Windows event schema the filters read.
// Elements are matched by local name so the default event namespace is accepted.
type xmlEvent struct {
	XMLName   xml.Name     `xml:"Event"`
	System    xmlSystem    `xml:"System"`
	EventData xmlEventData `xml:"EventData"`
}

type xmlSystem struct {
	EventID     *xmlEventID     `xml:"EventID"`
	TimeCreated *xmlTimeCreated `xml:"TimeCreated"`
}

type xmlEventID struct {
	Value string `xml:",chardata"`
}

type xmlTimeCreated struct {
	SystemTime string `xml:"SystemTime,attr"`
}

type xmlEventData struct {
	Data []xmlData `xml:"Data"`
}

type xmlData struct {
	Name  string `xml:"Name,attr"`
	Value string `xml:",chardata"`
}

// Field is one named EventData value.
type Field struct {
	Name  string
	Value string
}

// Event is the typed view of one decoded record.
type Event struct {
	ID      uint16
	Created time.Time
	HasTime bool
	Fields  []Field
}

// Parse deserializes one record payload. A payload that is not an <Event>
// document or has no usable EventID is a schema mismatch.
func Parse(payload string) (*Event, error) {
	var raw xmlEvent
	if err := xml.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, errors.NewSchemaError(err.Error())
	}
	if raw.System.EventID == nil {
		return nil, errors.NewSchemaError("missing EventID")
	}
	id, err := strconv.ParseUint(strings.TrimSpace(raw.System.EventID.Value), 10, 16)
	if err != nil {
		return nil, errors.NewSchemaError("bad EventID " + strconv.Quote(raw.System.EventID.Value))
	}

	ev := &Event{ID: uint16(id)}
	if raw.System.TimeCreated != nil {
		ev.Created, ev.HasTime = ParseSystemTime(raw.System.TimeCreated.SystemTime)
	}
	if n := len(raw.EventData.Data); n > 0 {
		ev.Fields = make([]Field, n)
		for i, d := range raw.EventData.Data {
			ev.Fields[i] = Field{Name: d.Name, Value: d.Value}
		}
	}
	return ev, nil
}

// Field returns the value of the first EventData element with the given name.
func (e *Event) Field(name string) (string, bool) {
	for _, f := range e.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// Actor returns the TargetUserName value, if present.
func (e *Event) Actor() (string, bool) {
	return e.Field(ActorField)
}

// ParseSystemTime parses a TimeCreated value into UTC. Both the evtx dumper
// form and RFC 3339 (Windows' own XML rendering) are accepted.
// ParseSystemTime 将 TimeCreated 值解析为 UTC 时间。
func ParseSystemTime(s string) (time.Time, bool) {
	if t, err := time.Parse(SystemTimeLayout, s); err == nil {
		return t.UTC(), true
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), true
	}
	return time.Time{}, false
}
