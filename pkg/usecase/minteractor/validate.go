// 指示: miu200521358
package minteractor

import (
	"sort"

	"github.com/miu200521358/mu_physmigrate/pkg/domain/merrors"
	"github.com/miu200521358/mu_physmigrate/pkg/domain/model"
)

// ValidateUniqueNames は移植元ツリーのノード名が一意か検証する。
// 重複がある場合は重複名を昇順で1件ずつ持つ *merrors.DuplicateNamesError を返す。
func ValidateUniqueNames(root *model.Node) error {
	if root == nil {
		return merrors.ErrTreeMissing
	}
	duplicates := collectDuplicateNames(root)
	if len(duplicates) == 0 {
		return nil
	}
	return merrors.NewDuplicateNamesError(duplicates)
}

// collectDuplicateNames は2回以上出現するノード名を昇順で返す。
func collectDuplicateNames(root *model.Node) []string {
	counts := map[string]int{}
	root.Walk(func(node *model.Node) {
		counts[node.Name]++
	})
	duplicates := []string{}
	for name, count := range counts {
		if count > 1 {
			duplicates = append(duplicates, name)
		}
	}
	sort.Strings(duplicates)
	return duplicates
}

// validateMigrationTrees は移植前の入力を検証する。変更は一切行わない。
func validateMigrationTrees(source *model.Node, target *model.Node) error {
	if source == nil || target == nil {
		return merrors.ErrTreeMissing
	}
	if source == target || source.Root() == target.Root() {
		return merrors.ErrSameTree
	}
	return ValidateUniqueNames(source)
}
