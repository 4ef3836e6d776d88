// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package fbprovider exposes a FeatBit client as an OpenFeature provider.
//
//	client, err := featbit.NewClient(opts)
//	...
//	if err := of.SetProviderAndWait(fbprovider.New(client)); err != nil {
//	    return err
//	}
//	flags := of.NewClient("checkout")
//
// The evaluation context's targeting key becomes the FeatBit user key, the
// "name" attribute the user name and every other attribute a custom property.
package fbprovider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	of "github.com/open-feature/go-sdk/openfeature"
	"github.com/rs/zerolog"

	featbit "github.com/MKhiriev/featbit-go-sdk"
	"github.com/MKhiriev/featbit-go-sdk/models"
)

// ProviderName is reported in the provider metadata.
const ProviderName = "FeatBit"

const readyPollInterval = 50 * time.Millisecond

// ErrNotReady is returned by Init when the client holds no data set.
var ErrNotReady = errors.New("featbit client is not initialized")

// Provider implements of.FeatureProvider and of.StateHandler on top of a
// *featbit.Client. The provider owns the client once registered: Shutdown
// closes it.
type Provider struct {
	client *featbit.Client
	log    zerolog.Logger
}

var (
	_ of.FeatureProvider = (*Provider)(nil)
	_ of.StateHandler    = (*Provider)(nil)
)

// New wraps client.
func New(client *featbit.Client) *Provider {
	return &Provider{
		client: client,
		log:    client.Options().LoggerFactory().CreateLogger("openfeature"),
	}
}

func (p *Provider) Metadata() of.Metadata {
	return of.Metadata{Name: ProviderName}
}

func (p *Provider) Hooks() []of.Hook {
	return []of.Hook{}
}

// Init waits up to the client's start wait time for the first data set.
func (p *Provider) Init(_ of.EvaluationContext) error {
	if p.client.Initialized() {
		return nil
	}

	deadline := time.NewTimer(p.client.Options().StartWaitTime())
	defer deadline.Stop()
	ticker := time.NewTicker(readyPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-deadline.C:
			return ErrNotReady
		case <-ticker.C:
			if p.client.Initialized() {
				return nil
			}
		}
	}
}

// Shutdown flushes pending insights and closes the client.
func (p *Provider) Shutdown() {
	if err := p.client.Close(); err != nil {
		p.log.Warn().Err(err).Msg("error closing featbit client")
	}
}

func (p *Provider) BooleanEvaluation(ctx context.Context, flag string, def bool, ec of.FlattenedContext) of.BoolResolutionDetail {
	user, detail := p.userFromContext(ctx, ec)
	if detail.Error() != nil {
		return of.BoolResolutionDetail{Value: def, ProviderResolutionDetail: detail}
	}

	res := p.client.BoolVariationDetail(flag, user, def)
	return of.BoolResolutionDetail{Value: res.Value, ProviderResolutionDetail: resolutionDetail(res)}
}

func (p *Provider) StringEvaluation(ctx context.Context, flag string, def string, ec of.FlattenedContext) of.StringResolutionDetail {
	user, detail := p.userFromContext(ctx, ec)
	if detail.Error() != nil {
		return of.StringResolutionDetail{Value: def, ProviderResolutionDetail: detail}
	}

	res := p.client.StringVariationDetail(flag, user, def)
	return of.StringResolutionDetail{Value: res.Value, ProviderResolutionDetail: resolutionDetail(res)}
}

func (p *Provider) FloatEvaluation(ctx context.Context, flag string, def float64, ec of.FlattenedContext) of.FloatResolutionDetail {
	user, detail := p.userFromContext(ctx, ec)
	if detail.Error() != nil {
		return of.FloatResolutionDetail{Value: def, ProviderResolutionDetail: detail}
	}

	res := p.client.FloatVariationDetail(flag, user, def)
	return of.FloatResolutionDetail{Value: res.Value, ProviderResolutionDetail: resolutionDetail(res)}
}

func (p *Provider) IntEvaluation(ctx context.Context, flag string, def int64, ec of.FlattenedContext) of.IntResolutionDetail {
	user, detail := p.userFromContext(ctx, ec)
	if detail.Error() != nil {
		return of.IntResolutionDetail{Value: def, ProviderResolutionDetail: detail}
	}

	res := p.client.IntVariationDetail(flag, user, int(def))
	return of.IntResolutionDetail{Value: int64(res.Value), ProviderResolutionDetail: resolutionDetail(res)}
}

func (p *Provider) ObjectEvaluation(ctx context.Context, flag string, def any, ec of.FlattenedContext) of.InterfaceResolutionDetail {
	user, detail := p.userFromContext(ctx, ec)
	if detail.Error() != nil {
		return of.InterfaceResolutionDetail{Value: def, ProviderResolutionDetail: detail}
	}

	res := p.client.JSONVariationDetail(flag, user, def)
	return of.InterfaceResolutionDetail{Value: res.Value, ProviderResolutionDetail: resolutionDetail(res)}
}

// userFromContext builds the FeatBit user. The returned detail carries an
// error when evaluation must not proceed.
func (p *Provider) userFromContext(ctx context.Context, ec of.FlattenedContext) (models.User, of.ProviderResolutionDetail) {
	if err := ctx.Err(); err != nil {
		return models.User{}, errorDetail(of.NewGeneralResolutionError(err.Error()))
	}

	key, _ := ec[of.TargetingKey].(string)
	if key == "" {
		return models.User{}, errorDetail(of.NewTargetingKeyMissingResolutionError("targeting key missing"))
	}

	b := models.NewUserBuilder(key)
	for attr, value := range ec {
		switch attr {
		case of.TargetingKey:
		case models.PropertyName:
			b.Name(stringify(value))
		default:
			b.Custom(attr, stringify(value))
		}
	}
	return b.Build(), of.ProviderResolutionDetail{}
}

func resolutionDetail[T any](d models.EvalDetail[T]) of.ProviderResolutionDetail {
	if d.IsError() {
		return errorDetail(resolutionError(d.Reason))
	}
	return of.ProviderResolutionDetail{
		Reason:       resolutionReason(d.Kind),
		Variant:      d.VariationID,
		FlagMetadata: of.FlagMetadata{"reason": d.Reason},
	}
}

func resolutionError(reason string) of.ResolutionError {
	switch reason {
	case models.ReasonFlagNotFound:
		return of.NewFlagNotFoundResolutionError(reason)
	case models.ReasonWrongType:
		return of.NewTypeMismatchResolutionError(reason)
	case models.ReasonUserNotSpecified:
		return of.NewTargetingKeyMissingResolutionError(reason)
	case models.ReasonClientNotReady:
		return of.NewProviderNotReadyResolutionError(reason)
	default:
		return of.NewGeneralResolutionError(reason)
	}
}

func resolutionReason(kind models.ReasonKind) of.Reason {
	switch kind {
	case models.KindOff:
		return of.DisabledReason
	case models.KindTargetMatch, models.KindRuleMatch:
		return of.TargetingMatchReason
	default:
		return of.DefaultReason
	}
}

func errorDetail(err of.ResolutionError) of.ProviderResolutionDetail {
	return of.ProviderResolutionDetail{ResolutionError: err, Reason: of.ErrorReason}
}

// stringify renders attribute values the way FeatBit stores custom
// properties: scalars as text, everything else as JSON.
func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool, int, int64, float64, float32, int32:
		return fmt.Sprint(t)
	case time.Time:
		return t.Format(time.RFC3339)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}
