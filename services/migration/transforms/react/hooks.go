// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package react

import (
	"context"
	"fmt"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/AleutianAI/lumen-migrate/services/migration/ast"
	"github.com/AleutianAI/lumen-migrate/services/migration/registry"
)

// TransformHooks rewrites React hooks to target reactivity primitives:
//
//	const [x, setX] = useState(init)  →  const x = ref(init)
//	                                     (setX(v) call sites → x.value = v)
//	useEffect(fn, [])                 →  onMounted(fn)
//	useEffect(fn)                     →  watchEffect(fn)
//	useEffect(fn, [deps])             →  watchEffect(fn)  + review warning
//	useMemo(fn, deps)                 →  computed(fn)
//	useCallback(fn, deps)             →  fn
//	useRef(init)                      →  ref(init)
//
// Setter calls inside a hook callback are rewritten within the spliced
// callback text; only call sites outside a replaced hook call get their
// own edit, so the queued edits never nest.
//
// Honors the transformHooks toggle. Idempotent: ref/computed/onMounted
// are not recognized as hooks.
func TransformHooks(ctx context.Context, sf *ast.SourceFile, project registry.Project) registry.Result {
	return registry.Guard("react/hooks", func() registry.Result {
		if project != nil && !project.Option("transformHooks") {
			return registry.Result{}
		}

		var errs []string
		setters := map[string]string{}
		var replaced []*sitter.Node

		transformed := rewriteUseState(sf, setters, &replaced)
		transformed = rewriteEffects(sf, setters, &replaced, &errs) || transformed
		transformed = rewriteSimpleHooks(sf, setters, &replaced) || transformed
		transformed = rewriteSetterCalls(sf, setters, replaced) || transformed

		if !transformed {
			return registry.Result{Errors: errs}
		}
		if err := sf.Apply(ctx); err != nil {
			return registry.Result{Errors: append(errs, err.Error())}
		}
		return registry.Result{Transformed: true, Errors: errs}
	})
}

// rewriteUseState handles the `const [x, setX] = useState(init)` idiom and
// records the setter name for call-site rewriting.
func rewriteUseState(sf *ast.SourceFile, setters map[string]string, replaced *[]*sitter.Node) bool {
	transformed := false

	calls := sf.CallExpressions(nil, func(call *sitter.Node) bool {
		return sf.CalleeName(call) == "useState"
	})
	for _, call := range calls {
		declarator := call.Parent()
		if declarator == nil || declarator.Type() != ast.NodeVariableDeclarator {
			continue
		}
		pattern := ast.ChildOfType(declarator, ast.NodeArrayPattern)
		if pattern == nil {
			continue
		}
		var names []string
		for i := 0; i < int(pattern.ChildCount()); i++ {
			el := pattern.Child(i)
			if el.Type() == ast.NodeIdentifier {
				names = append(names, sf.Text(el))
			}
		}
		if len(names) != 2 {
			continue
		}
		state, setter := names[0], names[1]
		setters[setter] = state

		init := ""
		if args := ast.ArgumentNodes(sf.CallArguments(call)); len(args) > 0 {
			init = sf.Text(args[0])
		}
		sf.ReplaceNode(pattern, state)
		sf.ReplaceNode(call, fmt.Sprintf("ref(%s)", init))
		*replaced = append(*replaced, call)
		transformed = true
	}
	return transformed
}

// rewriteEffects handles the useEffect forms. An effect returning a
// cleanup function is split: the cleanup goes to onUnmounted and the rest
// of the body stays in the mapped hook.
func rewriteEffects(sf *ast.SourceFile, setters map[string]string, replaced *[]*sitter.Node, errs *[]string) bool {
	transformed := false

	calls := sf.CallExpressions(nil, func(call *sitter.Node) bool {
		return sf.CalleeName(call) == "useEffect"
	})
	for _, call := range calls {
		args := ast.ArgumentNodes(sf.CallArguments(call))
		if len(args) == 0 {
			continue
		}

		target := "watchEffect"
		if len(args) >= 2 && args[1].Type() == ast.NodeArray {
			if strings.TrimSpace(strings.Trim(sf.Text(args[1]), "[]")) == "" {
				target = "onMounted"
			} else {
				*errs = append(*errs,
					"useEffect with a dependency list became watchEffect; review the tracked dependencies")
			}
		}

		if effect, cleanup, ok := splitEffectCleanup(sf, args[0], setters); ok {
			sf.ReplaceNode(call, fmt.Sprintf("%s(%s);\nonUnmounted(%s)", target, effect, cleanup))
		} else {
			sf.ReplaceNode(call, fmt.Sprintf("%s(%s)", target, setterRewrittenText(sf, args[0], setters)))
		}
		*replaced = append(*replaced, call)
		transformed = true
	}
	return transformed
}

// splitEffectCleanup detects the `return () => {...}` cleanup idiom in an
// effect callback. Returns the callback text with the return statement cut
// out and the returned function's text, both with setter calls rewritten.
// ok is false when the callback is not a function literal or returns no
// function.
func splitEffectCleanup(sf *ast.SourceFile, fn *sitter.Node, setters map[string]string) (effect, cleanup string, ok bool) {
	switch fn.Type() {
	case ast.NodeArrowFunction, ast.NodeFunctionExpr:
	default:
		return "", "", false
	}
	body := ast.ChildOfType(fn, ast.NodeStatementBlock)
	if body == nil {
		return "", "", false
	}
	ret := ast.ChildOfType(body, ast.NodeReturnStatement)
	if ret == nil {
		return "", "", false
	}
	var cleanupFn *sitter.Node
	for i := 0; i < int(ret.ChildCount()); i++ {
		switch ret.Child(i).Type() {
		case ast.NodeArrowFunction, ast.NodeFunctionExpr:
			cleanupFn = ret.Child(i)
		}
	}
	if cleanupFn == nil {
		return "", "", false
	}

	// Setter spans inside the return statement belong to the cleanup text,
	// not the effect text.
	spans := setterSpans(sf, fn, setters)
	kept := spans[:0]
	for _, sp := range spans {
		if sp.start >= ret.StartByte() && sp.end <= ret.EndByte() {
			continue
		}
		kept = append(kept, sp)
	}
	kept = append(kept, textSpan{start: ret.StartByte(), end: ret.EndByte()})

	effect = spliceNodeText(sf, fn, kept)
	cleanup = setterRewrittenText(sf, cleanupFn, setters)
	return effect, cleanup, true
}

// rewriteSimpleHooks handles useMemo, useCallback and useRef.
func rewriteSimpleHooks(sf *ast.SourceFile, setters map[string]string, replaced *[]*sitter.Node) bool {
	transformed := false

	calls := sf.CallExpressions(nil, func(call *sitter.Node) bool {
		switch sf.CalleeName(call) {
		case "useMemo", "useCallback", "useRef":
			return true
		}
		return false
	})
	for _, call := range calls {
		args := ast.ArgumentNodes(sf.CallArguments(call))
		if len(args) == 0 {
			continue
		}
		arg := setterRewrittenText(sf, args[0], setters)
		switch sf.CalleeName(call) {
		case "useMemo":
			sf.ReplaceNode(call, fmt.Sprintf("computed(%s)", arg))
		case "useCallback":
			sf.ReplaceNode(call, arg)
		case "useRef":
			sf.ReplaceNode(call, fmt.Sprintf("ref(%s)", arg))
		}
		*replaced = append(*replaced, call)
		transformed = true
	}
	return transformed
}

// rewriteSetterCalls queues `setX(v)` → `x.value = v` edits for call sites
// that do not fall inside an already-replaced hook call.
func rewriteSetterCalls(sf *ast.SourceFile, setters map[string]string, replaced []*sitter.Node) bool {
	transformed := false
	for _, sp := range setterSpans(sf, nil, setters) {
		if withinAny(sp, replaced) {
			continue
		}
		sf.ReplaceRange(sp.start, sp.end, sp.text)
		transformed = true
	}
	return transformed
}

// textSpan is a byte-range substitution inside a node's text. An empty
// text removes the range.
type textSpan struct {
	start, end uint32
	text       string
}

// setterSpans collects `setX(v)` call replacements within scope (nil for
// the whole file).
func setterSpans(sf *ast.SourceFile, scope *sitter.Node, setters map[string]string) []textSpan {
	var spans []textSpan
	calls := sf.CallExpressions(scope, func(c *sitter.Node) bool {
		_, ok := setters[sf.CalleeName(c)]
		return ok
	})
	for _, c := range calls {
		args := ast.ArgumentNodes(sf.CallArguments(c))
		if len(args) != 1 {
			continue
		}
		state := setters[sf.CalleeName(c)]
		spans = append(spans, textSpan{
			start: c.StartByte(),
			end:   c.EndByte(),
			text:  fmt.Sprintf("%s.value = %s", state, sf.Text(args[0])),
		})
	}
	return spans
}

// setterRewrittenText returns a node's text with its setter calls
// rewritten in place.
func setterRewrittenText(sf *ast.SourceFile, n *sitter.Node, setters map[string]string) string {
	return spliceNodeText(sf, n, setterSpans(sf, n, setters))
}

// spliceNodeText applies spans to a node's text, back to front so earlier
// offsets stay valid. Span offsets are absolute; the node's start is the
// base.
func spliceNodeText(sf *ast.SourceFile, n *sitter.Node, spans []textSpan) string {
	text := []byte(sf.Text(n))
	base := n.StartByte()
	sort.Slice(spans, func(i, j int) bool { return spans[i].start > spans[j].start })
	for _, sp := range spans {
		var out []byte
		out = append(out, text[:sp.start-base]...)
		out = append(out, sp.text...)
		out = append(out, text[sp.end-base:]...)
		text = out
	}
	return string(text)
}

// withinAny reports whether the span lies inside any of the nodes.
func withinAny(sp textSpan, nodes []*sitter.Node) bool {
	for _, n := range nodes {
		if sp.start >= n.StartByte() && sp.end <= n.EndByte() {
			return true
		}
	}
	return false
}
