package advisor

// Property is the read-only view of a selected property the advisor can
// reference in its replies.
type Property struct {
	ID           string
	Address      string
	PropertyType string
	FootTraffic  string
	M2           int
	ROI          float64
}

// Preferences are the customer preferences shown next to the chat.
type Preferences struct {
	MaxPrice                int
	MinM2                   int
	PrioritizeEnvironmental bool
	PropertyType            string
}

// Context is captured when a message is submitted and used to render the reply.
type Context struct {
	Selected     []Property
	Preferences  Preferences
	DocumentType string
}

// BestROI returns the selected property with the highest ROI. The first one
// wins on ties.
func (c Context) BestROI() *Property {
	if len(c.Selected) == 0 {
		return nil
	}
	best := c.Selected[0]
	for _, p := range c.Selected[1:] {
		if p.ROI > best.ROI {
			best = p
		}
	}
	return &best
}

// DocumentLabel is the Dutch name of the document being drafted.
func (c Context) DocumentLabel() string {
	switch c.DocumentType {
	case "rental":
		return "huurovereenkomst"
	case "sales":
		return "koopovereenkomst"
	default:
		return "dienstverleningscontract"
	}
}
