// 指示: miu200521358
package minteractor

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/miu200521358/mu_physmigrate/pkg/domain/merrors"
	"github.com/miu200521358/mu_physmigrate/pkg/domain/model"
	"github.com/miu200521358/mu_physmigrate/pkg/usecase/port/moutput"
)

// DefaultPreBuildFolder は事前構築データの既定保存先。
const DefaultPreBuildFolder = "Assets/MagicaPreBuildData"

// newPreBuildAssetID はアセット名に付与する短縮IDを返す。
var newPreBuildAssetID = func() string {
	return uuid.NewString()[:8]
}

// PreBuildRequest はクロス事前構築要求を表す。
type PreBuildRequest struct {
	Target *model.Scene
	// Folder は保存先の基底フォルダ。空の場合は DefaultPreBuildFolder。
	Folder           string
	Provider         moutput.IPreBuildProvider
	Store            moutput.IPreBuildStore
	ProgressReporter IMigrateProgressReporter
}

// PreBuildItemResult はクロス1件分の事前構築結果を表す。
type PreBuildItemResult struct {
	NodeName  string
	AssetPath string
	Err       error
}

// Succeeded は成功したか判定する。
func (r PreBuildItemResult) Succeeded() bool {
	return r.Err == nil
}

// PreBuildResult はクロス事前構築結果を表す。
type PreBuildResult struct {
	Folder string
	Items  []PreBuildItemResult
}

// SuccessCount は成功件数を返す。
func (r *PreBuildResult) SuccessCount() int {
	count := 0
	for _, item := range r.Items {
		if item.Succeeded() {
			count++
		}
	}
	return count
}

// Total は対象件数を返す。
func (r *PreBuildResult) Total() int {
	return len(r.Items)
}

// CreatePreBuildData は移植先のクロス記述ごとに事前構築を有効化し、データを生成して保存する。
// 失敗はクロス単位で記録し、他のクロスの処理は継続する。
func CreatePreBuildData(request PreBuildRequest) (*PreBuildResult, error) {
	if request.Target == nil || request.Target.Root == nil {
		return nil, merrors.ErrTreeMissing
	}
	if request.Provider == nil {
		return nil, fmt.Errorf("事前構築データ生成処理が設定されていません")
	}
	if request.Store == nil {
		return nil, fmt.Errorf("事前構築データ保存先が設定されていません")
	}

	baseFolder := strings.TrimSpace(request.Folder)
	if baseFolder == "" {
		baseFolder = DefaultPreBuildFolder
	}
	result := &PreBuildResult{Folder: filepath.Join(baseFolder, request.Target.Name)}

	cloths := collectCloths(request.Target.Root)
	if len(cloths) == 0 {
		logMigrateInfo("移植先にクロス記述がありません: %s", request.Target.Name)
		return result, nil
	}
	if err := request.Store.EnsureFolder(result.Folder); err != nil {
		return nil, merrors.NewPersistenceError(result.Folder, err)
	}

	for _, cloth := range cloths {
		item := createPreBuildItem(request, result.Folder, cloth)
		result.Items = append(result.Items, item)
		if item.Err != nil {
			logMigrateError("事前構築失敗 '%s': %v", item.NodeName, item.Err)
		} else {
			logMigrateInfo("事前構築成功 '%s': %s", item.NodeName, item.AssetPath)
		}
		reportMigrateProgress(request.ProgressReporter, MigrateProgressEvent{
			Type: MigrateProgressEventTypePreBuildItem,
			Kind: model.RecordKindCloth,
		})
	}

	logMigrateInfo("事前構築完了: 成功 %d / %d", result.SuccessCount(), result.Total())
	return result, nil
}

// createPreBuildItem はクロス1件分の事前構築を行う。
func createPreBuildItem(request PreBuildRequest, folder string, cloth *model.Cloth) PreBuildItemResult {
	nodeName := cloth.Owner().Name
	cloth.PreBuild.Enabled = true
	if strings.TrimSpace(cloth.PreBuild.AssetPath) == "" {
		assetName := fmt.Sprintf("PreBuild_%s_%s.asset", nodeName, newPreBuildAssetID())
		cloth.PreBuild.AssetPath = filepath.Join(folder, assetName)
	}
	item := PreBuildItemResult{NodeName: nodeName, AssetPath: cloth.PreBuild.AssetPath}

	data, err := request.Provider.BuildPreBuildData(cloth)
	if err != nil {
		item.Err = fmt.Errorf("事前構築データの生成に失敗しました: %w", err)
		return item
	}
	if err := request.Store.Write(item.AssetPath, data); err != nil {
		item.Err = merrors.NewPersistenceError(item.AssetPath, err)
	}
	return item
}

// collectCloths は配下のクロス記述を行きがけ順で返す。
func collectCloths(root *model.Node) []*model.Cloth {
	cloths := []*model.Cloth{}
	root.Walk(func(node *model.Node) {
		for _, record := range node.RecordsOf(model.RecordKindCloth) {
			if cloth, ok := record.(*model.Cloth); ok {
				cloths = append(cloths, cloth)
			}
		}
	})
	return cloths
}
