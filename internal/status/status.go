// Package status defines the closed quote lifecycle vocabulary.
package status

// Status is a quote lifecycle state. Transitions are unconstrained: any
// status may follow any other.
type Status string

const (
	Draft    Status = "draft"
	Sent     Status = "sent"
	Viewed   Status = "viewed"
	Accepted Status = "accepted"
	Rejected Status = "rejected"
)

// All lists the vocabulary in lifecycle order.
var All = []Status{Draft, Sent, Viewed, Accepted, Rejected}

var labels = map[Status]string{
	Draft:    "Borrador",
	Sent:     "Enviada",
	Viewed:   "Vista",
	Accepted: "Aceptada",
	Rejected: "Rechazada",
}

var variants = map[Status]string{
	Draft:    "gray",
	Sent:     "blue",
	Viewed:   "purple",
	Accepted: "green",
	Rejected: "red",
}

func Valid(s Status) bool {
	_, ok := labels[s]
	return ok
}

// Label returns the display label, "Desconocido" for unknown statuses.
func Label(s Status) string {
	if label, ok := labels[s]; ok {
		return label
	}
	return "Desconocido"
}

// Variant returns the visual category used by badges, "gray" for unknown
// statuses.
func Variant(s Status) string {
	if variant, ok := variants[s]; ok {
		return variant
	}
	return "gray"
}
