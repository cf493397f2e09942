// 指示: miu200521358
package minteractor

import (
	"strings"

	"github.com/miu200521358/mu_physmigrate/pkg/domain/model"
)

const (
	// ProviderNameMagica はクロス/コライダー系のプロバイダ名。
	ProviderNameMagica = "magica"
	// ProviderNameVrm はVRMスプリングボーン系のプロバイダ名。
	ProviderNameVrm = "vrm"
)

// IAttachmentProvider は移植可能なレコード種別の提供元を表す。
type IAttachmentProvider interface {
	// Name はプロバイダ名を返す。
	Name() string
	// Kinds は扱うレコード種別を返す。
	Kinds() []model.RecordKind
}

// attachmentProvider は固定種別を扱うプロバイダを表す。
type attachmentProvider struct {
	name  string
	kinds []model.RecordKind
}

func (p attachmentProvider) Name() string { return p.name }

func (p attachmentProvider) Kinds() []model.RecordKind {
	return append([]model.RecordKind(nil), p.kinds...)
}

// NewAttachmentProvider は任意の種別を扱うプロバイダを生成する。
func NewAttachmentProvider(name string, kinds ...model.RecordKind) IAttachmentProvider {
	return attachmentProvider{name: name, kinds: append([]model.RecordKind(nil), kinds...)}
}

// NewMagicaProvider はカプセル/球/平面コライダーとクロスを扱うプロバイダを生成する。
func NewMagicaProvider() IAttachmentProvider {
	return NewAttachmentProvider(ProviderNameMagica,
		model.RecordKindCapsuleCollider,
		model.RecordKindSphereCollider,
		model.RecordKindPlaneCollider,
		model.RecordKindCloth,
	)
}

// NewVrmProvider はコライダーグループとスプリングボーンを扱うプロバイダを生成する。
func NewVrmProvider() IAttachmentProvider {
	return NewAttachmentProvider(ProviderNameVrm,
		model.RecordKindColliderGroup,
		model.RecordKindSpringBone,
	)
}

// DefaultProviders は組み込みプロバイダを返す。
func DefaultProviders() []IAttachmentProvider {
	return []IAttachmentProvider{NewMagicaProvider(), NewVrmProvider()}
}

// FilterProviders は無効化指定された名前のプロバイダを除外する。
func FilterProviders(providers []IAttachmentProvider, disabled []string) []IAttachmentProvider {
	disabledSet := map[string]struct{}{}
	for _, name := range disabled {
		disabledSet[strings.ToLower(strings.TrimSpace(name))] = struct{}{}
	}
	filtered := make([]IAttachmentProvider, 0, len(providers))
	for _, provider := range providers {
		if _, ok := disabledSet[strings.ToLower(provider.Name())]; ok {
			continue
		}
		filtered = append(filtered, provider)
	}
	return filtered
}

// providedKinds はプロバイダが扱う種別集合を返す。
func providedKinds(providers []IAttachmentProvider) map[model.RecordKind]bool {
	kinds := map[model.RecordKind]bool{}
	for _, provider := range providers {
		if provider == nil {
			continue
		}
		for _, kind := range provider.Kinds() {
			kinds[kind] = true
		}
	}
	return kinds
}
