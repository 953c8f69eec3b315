package works

import (
	"fmt"
	"strings"
)

type View string

const (
	ViewHome        View = "home"
	ViewExhibitions View = "exhibitions"
	ViewUpload      View = "upload"
	ViewDashboard   View = "dashboard"
)

func ParseView(raw string) (View, error) {
	switch v := View(strings.ToLower(strings.TrimSpace(raw))); v {
	case ViewHome, ViewExhibitions, ViewUpload, ViewDashboard:
		return v, nil
	case "":
		return ViewHome, nil
	default:
		return "", fmt.Errorf("unknown view %q", raw)
	}
}
