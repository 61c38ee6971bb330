package remote

import (
	"loan-portal/internal/domain/loan"
	"loan-portal/internal/domain/session"
	"loan-portal/internal/domain/user"
)

// Ports hands out adapters bound to one session store.
type Ports struct{ client *Client }

func NewPorts(c *Client) *Ports { return &Ports{client: c} }

func (p *Ports) Auth(store session.Store) user.AuthPort { return NewAuthAdapter(p.client, store) }

func (p *Ports) Loans(store session.Store) loan.Port { return NewLoanAdapter(p.client, store) }
