package metric

import (
	"net/http"
	"time"
)

type (
	Factory interface {
		HTTP() HTTP
		Store() Store
		Events() Events
		Handler() http.Handler
	}

	HTTP interface {
		Request(method, path string, status int, duration time.Duration)
		SlowRequest(method, path string, status int, duration time.Duration)
	}

	Store interface {
		ObserveDuration(operation string, duration time.Duration)
		IncrementFailures(operation string)
	}

	Events interface {
		Published(topic string)
		Failed(topic string, reason string)
	}
)
