// MIT License
//
// Copyright (c) 2024 sphinx-core
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// go/src/kes/metrics.go
package kes

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds Prometheus instruments for KES operations. It is
// optional: callers that do not need it simply never construct one, and
// every Algorithm method works identically without it.
type Metrics struct {
	KeyGenCount     *prometheus.CounterVec
	SignCount       *prometheus.CounterVec
	VerifyCount     *prometheus.CounterVec
	VerifyFailCount *prometheus.CounterVec
	UpdateCount     *prometheus.CounterVec
	OperationLatency *prometheus.HistogramVec
}

// NewMetrics initializes Prometheus metrics for KES operations, labeled
// by algorithm name (e.g. "Sum6Kes").
func NewMetrics() *Metrics {
	return &Metrics{
		KeyGenCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kes_keygen_count",
				Help: "Number of KES signing keys generated",
			},
			[]string{"algorithm"},
		),
		SignCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kes_sign_count",
				Help: "Number of KES signatures produced",
			},
			[]string{"algorithm"},
		),
		VerifyCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kes_verify_count",
				Help: "Number of KES signature verifications attempted",
			},
			[]string{"algorithm"},
		),
		VerifyFailCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kes_verify_fail_count",
				Help: "Number of KES signature verifications that failed",
			},
			[]string{"algorithm"},
		),
		UpdateCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kes_update_count",
				Help: "Number of KES key evolutions performed",
			},
			[]string{"algorithm"},
		),
		OperationLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "kes_operation_latency_seconds",
				Help:    "Latency of KES operations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"algorithm", "operation"},
		),
	}
}

// Register registers every instrument in m with reg. Callers typically
// pass prometheus.DefaultRegisterer or a registry scoped to their own
// process.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		m.KeyGenCount,
		m.SignCount,
		m.VerifyCount,
		m.VerifyFailCount,
		m.UpdateCount,
		m.OperationLatency,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// InstrumentedAlgorithm wraps an Algorithm so that GenKeyFromSeed, Sign,
// Verify and UpdateKey report counts and latency to m under the wrapped
// algorithm's Name().
type InstrumentedAlgorithm struct {
	Algorithm
	metrics *Metrics
}

// Instrument wraps a with m. Passing a nil m makes every recorded
// operation a no-op, which is useful for disabling metrics without
// branching at call sites.
func Instrument(a Algorithm, m *Metrics) Algorithm {
	return &InstrumentedAlgorithm{Algorithm: a, metrics: m}
}

func (w *InstrumentedAlgorithm) GenKeyFromSeed(seed []byte) (SigningKey, error) {
	start := time.Now()
	sk, err := w.Algorithm.GenKeyFromSeed(seed)
	if w.metrics != nil {
		w.metrics.OperationLatency.WithLabelValues(w.Name(), "gen_key").Observe(time.Since(start).Seconds())
		if err == nil {
			w.metrics.KeyGenCount.WithLabelValues(w.Name()).Inc()
		}
	}
	return sk, err
}

func (w *InstrumentedAlgorithm) Sign(ctx Context, period Period, msg []byte, sk SigningKey) (Signature, error) {
	start := time.Now()
	sig, err := w.Algorithm.Sign(ctx, period, msg, sk)
	if w.metrics != nil {
		w.metrics.OperationLatency.WithLabelValues(w.Name(), "sign").Observe(time.Since(start).Seconds())
		if err == nil {
			w.metrics.SignCount.WithLabelValues(w.Name()).Inc()
		}
	}
	return sig, err
}

func (w *InstrumentedAlgorithm) Verify(ctx Context, vk VerificationKey, period Period, msg []byte, sig Signature) error {
	start := time.Now()
	err := w.Algorithm.Verify(ctx, vk, period, msg, sig)
	if w.metrics != nil {
		w.metrics.OperationLatency.WithLabelValues(w.Name(), "verify").Observe(time.Since(start).Seconds())
		w.metrics.VerifyCount.WithLabelValues(w.Name()).Inc()
		if err != nil {
			w.metrics.VerifyFailCount.WithLabelValues(w.Name()).Inc()
		}
	}
	return err
}

func (w *InstrumentedAlgorithm) UpdateKey(ctx Context, sk SigningKey, period Period) (bool, error) {
	start := time.Now()
	ok, err := w.Algorithm.UpdateKey(ctx, sk, period)
	if w.metrics != nil {
		w.metrics.OperationLatency.WithLabelValues(w.Name(), "update_key").Observe(time.Since(start).Seconds())
		if err == nil {
			w.metrics.UpdateCount.WithLabelValues(w.Name()).Inc()
		}
	}
	return ok, err
}
