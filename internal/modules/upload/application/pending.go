package application

import "github.com/saransh1220/limbgen/internal/modules/upload/domain"

// Pending is the outcome of an upload that is still in flight
type Pending struct {
	done chan struct{}
	res  *domain.Response
	err  error
}

func newPending() *Pending {
	return &Pending{done: make(chan struct{})}
}

func (p *Pending) resolve(res *domain.Response, err error) {
	p.res, p.err = res, err
	close(p.done)
}

// Done is closed once the outcome is known
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the upload finishes and returns its outcome
func (p *Pending) Wait() (*domain.Response, error) {
	<-p.done
	return p.res, p.err
}
