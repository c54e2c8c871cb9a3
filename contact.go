package main

import (
	"log"
	"time"

	"golang.design/x/clipboard"
)

const statusLifetime = 3 * time.Second

// ContactCopier puts the contact address on the system clipboard.
type ContactCopier struct {
	address string
	ready   bool

	status  string
	stamped time.Time
}

func NewContactCopier(address string) *ContactCopier {
	c := &ContactCopier{address: address}
	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard unavailable: %v", err)
		return c
	}
	c.ready = true
	return c
}

func (c *ContactCopier) Copy() {
	if c == nil || c.address == "" {
		return
	}
	if !c.ready {
		c.setStatus("clipboard unavailable: " + c.address)
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(c.address))
	c.setStatus("copied " + c.address)
}

func (c *ContactCopier) setStatus(s string) {
	c.status = s
	c.stamped = time.Now()
}

// Status is the last copy result, cleared after a few seconds.
func (c *ContactCopier) Status() string {
	if c == nil || c.status == "" || time.Since(c.stamped) > statusLifetime {
		return ""
	}
	return c.status
}
