package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PostsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "posts_created_total",
			Help: "Total number of posts created",
		},
	)

	PostListingsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "post_listings_total",
			Help: "Total number of post feed requests served",
		},
	)
)
