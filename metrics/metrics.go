// Package metrics defines the Prometheus collectors exported on /metrics.
// All collectors register with the default registry at init time.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "noticeboard"

// HTTPRequestsTotal counts handled requests.
// Labels: method, route (the gin full path, "unmatched" for 404s), status.
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests handled.",
	},
	[]string{"method", "route", "status"},
)

// HTTPRequestDuration measures handler latency per route.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// PostsCreatedTotal counts created posts by category.
var PostsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "posts_created_total",
		Help:      "Total number of posts created, by category.",
	},
	[]string{"category"},
)

// PostsEditedTotal counts successful post edits.
var PostsEditedTotal = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "posts_edited_total",
	Help:      "Total number of successful post edits.",
})

// PostsDeletedTotal counts deleted posts.
var PostsDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "posts_deleted_total",
	Help:      "Total number of posts deleted.",
})

// PinTogglesTotal counts pin flips.
// Label: state is the resulting state, "pinned" or "unpinned".
var PinTogglesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pin_toggles_total",
		Help:      "Total number of pin toggles, by resulting state.",
	},
	[]string{"state"},
)

// CommentsCreatedTotal counts created comments.
var CommentsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "comments_created_total",
	Help:      "Total number of comments created.",
})

// CommentsDeletedTotal counts comments removed directly (cascades excluded).
var CommentsDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "comments_deleted_total",
	Help:      "Total number of comments deleted.",
})

// AuthFailuresTotal counts rejected logins and tokens.
// Label: reason, e.g. "bad_credentials", "invalid_token", "revoked".
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of authentication failures, by reason.",
	},
	[]string{"reason"},
)
