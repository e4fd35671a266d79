package catalog

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jhoicas/wms-catalog/internal/domain/entity"
)

// Node nodo del árbol de categorías con los elementos (productos o vistas) asignados.
type Node[T any] struct {
	Category *entity.Category
	Children []*Node[T]
	Items    []T
}

const (
	unvisited = iota
	visiting
	done
)

// BuildTree arma el bosque de categorías a partir de la lista plana (servicio de dominio, puro).
// Una categoría sin padre, o cuyo padre no está en la lista, es raíz. Los enlaces son por id,
// así que el resultado no depende del orden de entrada: hermanos ordenados por nombre (collation
// española) y luego por id. Si los datos traen un ciclo, se corta en el nodo de id menor.
func BuildTree[T any](categories []*entity.Category) []*Node[T] {
	nodes := make(map[string]*Node[T], len(categories))
	ids := make([]string, 0, len(categories))
	for _, c := range categories {
		if c == nil {
			continue
		}
		if _, dup := nodes[c.ID]; dup {
			continue
		}
		nodes[c.ID] = &Node[T]{Category: c}
		ids = append(ids, c.ID)
	}
	sort.Strings(ids)

	parentOf := make(map[string]string, len(nodes))
	for _, id := range ids {
		p := nodes[id].Category.ParentID
		if _, ok := nodes[p]; ok && p != "" {
			parentOf[id] = p
		}
	}
	breakCycles(ids, parentOf)

	var roots []*Node[T]
	for _, id := range ids {
		n := nodes[id]
		if p, ok := parentOf[id]; ok {
			nodes[p].Children = append(nodes[p].Children, n)
			continue
		}
		roots = append(roots, n)
	}

	col := collate.New(language.Spanish)
	sortNodes(col, roots)
	return roots
}

// breakCycles elimina un enlace padre por ciclo, el del nodo de id menor dentro del ciclo.
func breakCycles(ids []string, parentOf map[string]string) {
	state := make(map[string]int, len(ids))
	for _, id := range ids {
		if state[id] != unvisited {
			continue
		}
		var path []string
		cur := id
		for {
			state[cur] = visiting
			path = append(path, cur)
			p, ok := parentOf[cur]
			if !ok || state[p] == done {
				break
			}
			if state[p] == visiting {
				delete(parentOf, minOnCycle(path, p))
				break
			}
			cur = p
		}
		for _, n := range path {
			state[n] = done
		}
	}
}

func minOnCycle(path []string, start string) string {
	i := len(path) - 1
	for path[i] != start {
		i--
	}
	m := path[i]
	for _, id := range path[i:] {
		if id < m {
			m = id
		}
	}
	return m
}

func sortNodes[T any](col *collate.Collator, nodes []*Node[T]) {
	sort.SliceStable(nodes, func(i, j int) bool {
		if c := col.CompareString(nodes[i].Category.Name, nodes[j].Category.Name); c != 0 {
			return c < 0
		}
		return nodes[i].Category.ID < nodes[j].Category.ID
	})
	for _, n := range nodes {
		sortNodes(col, n.Children)
	}
}

// Attach coloca cada elemento en el nodo de su categoría. Los que apuntan a una categoría
// fuera del árbol se descartan (siguen en los listados planos); devuelve cuántos.
func Attach[T any](roots []*Node[T], items []T, categoryOf func(T) string) int {
	index := make(map[string]*Node[T])
	var walk func([]*Node[T])
	walk = func(ns []*Node[T]) {
		for _, n := range ns {
			index[n.Category.ID] = n
			walk(n.Children)
		}
	}
	walk(roots)

	dropped := 0
	for _, it := range items {
		n, ok := index[categoryOf(it)]
		if !ok {
			dropped++
			continue
		}
		n.Items = append(n.Items, it)
	}
	return dropped
}

// WouldCycle indica si asignar newParentID como padre de id crea un ciclo en categories.
func WouldCycle(categories []*entity.Category, id, newParentID string) bool {
	if newParentID == "" {
		return false
	}
	parent := make(map[string]string, len(categories))
	for _, c := range categories {
		parent[c.ID] = c.ParentID
	}
	seen := make(map[string]bool)
	for cur := newParentID; cur != ""; cur = parent[cur] {
		if cur == id {
			return true
		}
		if seen[cur] {
			return false
		}
		seen[cur] = true
	}
	return false
}
