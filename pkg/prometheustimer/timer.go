// Copyright (c) 2025 statekv authors
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package prometheustimer

import (
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/statekv/statekv/pkg/log"
)

type (
	// TimerFactory defines a timer factory to generate timer
	TimerFactory struct {
		labelNames    []string
		defaultLabels []string
		vect          *prometheus.GaugeVec
	}

	// Timer defines a timer to measure performance
	Timer struct {
		factory   *TimerFactory
		labels    []string
		startTime int64
	}
)

// New returns a new TimerFactory
func New(name, tip string, labelNames, defaultLabels []string) (*TimerFactory, error) {
	if len(labelNames) != len(defaultLabels) {
		return nil, errors.New("label names do not match default labels")
	}
	vect := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: name,
			Help: tip,
		},
		labelNames,
	)
	err := prometheus.Register(vect)
	return &TimerFactory{
		labelNames:    labelNames,
		defaultLabels: defaultLabels,
		vect:          vect,
	}, err
}

// NewTimer returns a timer with start time as now
func (factory *TimerFactory) NewTimer(labels ...string) *Timer {
	if factory == nil {
		return &Timer{}
	}
	if len(labels) > len(factory.labelNames) {
		log.L().Error("Too many timer labels.")
		return &Timer{}
	}
	return &Timer{
		factory:   factory,
		labels:    labels,
		startTime: time.Now().UnixNano(),
	}
}

// End ends the timer
func (timer *Timer) End() {
	f := timer.factory
	if f == nil {
		return
	}
	f.log(float64(time.Now().UnixNano()-timer.startTime), timer.labels...)
}

func (f *TimerFactory) log(value float64, labels ...string) {
	f.vect.WithLabelValues(append(labels, f.defaultLabels[len(labels):]...)...).Set(value)
}
