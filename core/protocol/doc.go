// Package protocol provides a custom URL scheme handler registry.
//
// Embedders use it to serve schemes the network stack has no native support
// for (Register) and to override the stack's own handling of built-in
// schemes (Intercept). Each scheme carries at most one registration and at
// most one interceptor; when both exist, the interceptor wins at Resolve
// time.
//
// # Usage
//
//	reg := protocol.NewRegistry(log)
//
//	err := reg.Register("app", func(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
//		return protocol.NewStringResponse("<h1>" + req.URL.Host + "</h1>"), nil
//	})
//	if err != nil {
//		return err
//	}
//
//	if h, ok := reg.Resolve("app"); ok {
//		resp, err := h(ctx, req)
//		// serve resp ...
//	}
//
// Handlers synthesize Response values; a zero MimeType/Charset is served as
// text/html in utf-8. The registry is safe for concurrent use.
package protocol
