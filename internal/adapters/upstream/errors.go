// Package upstream reúne o que os clientes das APIs externas compartilham.
package upstream

import (
	"context"
	"errors"
	"net"

	"github.com/JeanGrijp/crime-map/internal/core/domain"
)

// TransportError classifica uma falha de transporte, marcando timeouts.
func TransportError(service string, err error) error {
	return &domain.UpstreamError{Service: service, Timeout: isTimeout(err), Err: err}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
