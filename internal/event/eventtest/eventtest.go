// Package eventtest builds single-line event payloads for tests.
package eventtest

import (
	"fmt"
	"strings"
)

const ns = "http://schemas.microsoft.com/win/2004/08/events/event"

// Record describes a synthetic event. Empty SystemTime omits TimeCreated.
type Record struct {
	ID         uint16
	SystemTime string
	Data       [][2]string
}

// XML renders r as a one-line <Event> document in evtx dumper form.
func (r Record) XML() string {
	var b strings.Builder
	fmt.Fprintf(&b, `<Event xmlns="%s"><System><Provider Name="Microsoft-Windows-Security-Auditing"></Provider>`, ns)
	fmt.Fprintf(&b, `<EventID>%d</EventID>`, r.ID)
	if r.SystemTime != "" {
		fmt.Fprintf(&b, `<TimeCreated SystemTime="%s"></TimeCreated>`, r.SystemTime)
	}
	b.WriteString(`<Computer>DC01.corp.local</Computer></System><EventData>`)
	for _, kv := range r.Data {
		fmt.Fprintf(&b, `<Data Name="%s">%s</Data>`, kv[0], kv[1])
	}
	b.WriteString(`</EventData></Event>`)
	return b.String()
}

// Logon is a shorthand for an event carrying only TargetUserName.
func Logon(id uint16, systemTime, user string) string {
	return Record{ID: id, SystemTime: systemTime, Data: [][2]string{{"TargetUserName", user}}}.XML()
}
