package jsonschema

import (
	"context"
	"errors"
	"io"

	"golang.org/x/sync/errgroup"
)

// AsyncFetcher retrieves a document's raw bytes for an absolute URI. When
// none is installed, CompileAsync/CompileFromURL fall back to one that wraps
// the registered Loaders (http/https by default); callers may substitute their own (e.g. to fetch from an in-memory bundle
// or a non-HTTP scheme) via Compiler.WithAsyncFetcher.
type AsyncFetcher func(ctx context.Context, uri string) ([]byte, error)

// WithAsyncFetcher installs the fetcher CompileAsync/CompileFromURL use for
// remote $ref retrieval, overriding the Loaders-backed default.
func (c *Compiler) WithAsyncFetcher(fetcher AsyncFetcher) *Compiler {
	c.asyncFetcher = fetcher
	return c
}

// defaultAsyncFetcher reads a URI through whichever Loader is registered
// for its scheme (http/https by default, see setupLoaders).
func (c *Compiler) defaultAsyncFetcher(_ context.Context, uri string) ([]byte, error) {
	loader, ok := c.Loaders[getURLScheme(uri)]
	if !ok {
		return nil, ErrNoLoaderRegistered
	}
	body, err := loader(uri)
	if err != nil {
		return nil, errors.Join(ErrNetworkFetch, err)
	}
	defer body.Close() //nolint:errcheck
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, errors.Join(ErrDataRead, err)
	}
	return data, nil
}

// CompileAsync compiles a schema document, resolving remote $refs by
// fetching every currently-known missing document in parallel (fan-out),
// then joining before re-running the resolution pass (spec.md §5: "gathers
// all retrieval requests first and issues them in parallel"). Because a
// freshly fetched document can itself name further unresolved refs, this
// repeats in rounds until a round makes no progress.
func (c *Compiler) CompileAsync(ctx context.Context, jsonSchema []byte, uris ...string) (*Schema, error) {
	schema, err := newSchema(jsonSchema)
	if err != nil {
		return nil, err
	}
	if schema.ID == "" && len(uris) > 0 {
		schema.ID = uris[0]
	}

	if err := schema.initializeSchema(c, nil); err != nil {
		return nil, err
	}
	if err := schema.validateRegexSyntax(); err != nil {
		return nil, err
	}
	if err := checkDraft04Interdependencies(schema); err != nil {
		return nil, err
	}
	schema.precompilePatterns()

	c.mu.Lock()
	if schema.uri != "" && isValidURI(schema.uri) {
		c.schemas[schema.uri] = schema
	}
	c.mu.Unlock()

	if err := c.resolveTreeAsync(ctx, schema); err != nil {
		return nil, err
	}

	if unresolved := schema.GetUnresolvedReferenceURIs(); len(unresolved) > 0 {
		return nil, errors.Join(ErrUnresolvableRef, errors.New(unresolved[0]))
	}
	return schema, nil
}

// CompileFromURL fetches the document at url and compiles it asynchronously,
// using url as the document's fetched-from URI.
func (c *Compiler) CompileFromURL(ctx context.Context, url string) (*Schema, error) {
	fetch := c.asyncFetcher
	if fetch == nil {
		fetch = c.defaultAsyncFetcher
	}
	data, err := fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return c.CompileAsync(ctx, data, url)
}

// resolveTreeAsync drives resolveReferences to a fixed point, fetching every
// round's batch of unresolved absolute URIs concurrently via an errgroup
// before re-resolving. Ordering between concurrent fetches is unobservable:
// each fetched document is compiled and cached keyed by its own absolute
// URI, independent of fetch completion order.
func (c *Compiler) resolveTreeAsync(ctx context.Context, schema *Schema) error {
	fetch := c.asyncFetcher
	if fetch == nil {
		fetch = c.defaultAsyncFetcher
	}

	for i := 0; i < 8; i++ {
		schema.ResolveUnresolvedReferences()
		pending := schema.GetUnresolvedReferenceURIs()
		if len(pending) == 0 {
			return nil
		}

		toFetch := make([]string, 0, len(pending))
		seen := make(map[string]bool, len(pending))
		for _, uri := range pending {
			base, _ := splitRef(uri)
			if seen[base] {
				continue
			}
			seen[base] = true
			c.mu.RLock()
			_, cached := c.schemas[base]
			c.mu.RUnlock()
			if !cached {
				toFetch = append(toFetch, base)
			}
		}
		if len(toFetch) == 0 {
			return nil // nothing left fetchable; caller reports ErrUnresolvableRef
		}

		g, gctx := errgroup.WithContext(ctx)
		results := make([][]byte, len(toFetch))
		for i, uri := range toFetch {
			i, uri := i, uri
			g.Go(func() error {
				data, err := fetch(gctx, uri)
				if err != nil {
					return nil // a single unreachable document doesn't abort the whole batch
				}
				results[i] = data
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		for i, uri := range toFetch {
			if results[i] == nil {
				continue
			}
			if _, _, err := c.compileNode(results[i], uri); err != nil {
				return err
			}
		}
	}
	return nil
}
