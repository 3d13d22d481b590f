// Copyright (c) 2025 statekv authors
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

// Package lifecycle provides application models' lifecycle management.
package lifecycle

import "context"

type (
	// Model is application model which may implement Starter and/or Stopper interface
	Model interface{}

	// Starter is the interface of models can be started
	Starter interface {
		Start(context.Context) error
	}

	// Stopper is the interface of models can be stopped
	Stopper interface {
		Stop(context.Context) error
	}

	// StartStopper is the interface of models can be started and stopped
	StartStopper interface {
		Starter
		Stopper
	}

	// Lifecycle manages models' lifecycle
	Lifecycle struct {
		models []Model
	}
)

// Add adds a model into LifeCycle
func (lc *Lifecycle) Add(m Model) { lc.models = append(lc.models, m) }

// AddModels adds multiple models into LifeCycle
func (lc *Lifecycle) AddModels(m ...Model) { lc.models = append(lc.models, m...) }

// OnStart runs models' Start function if models implemented it
func (lc *Lifecycle) OnStart(ctx context.Context) error {
	for _, m := range lc.models {
		if starter, ok := m.(Starter); ok {
			if err := starter.Start(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}

// OnStop runs models' Stop function if models implemented it
func (lc *Lifecycle) OnStop(ctx context.Context) error {
	for _, m := range lc.models {
		if stopper, ok := m.(Stopper); ok {
			if err := stopper.Stop(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}
