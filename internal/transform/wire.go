package transform

import (
	"fmt"

	"svgjsx/internal/svgr"

	"google.golang.org/protobuf/types/known/structpb"
)

// gRPC surface of a remote transformer. Messages are well-known protobuf
// types so no generated code is needed.
const (
	ServiceName     = "svgjsx.v1.Transformer"
	MethodMetadata  = "/" + ServiceName + "/Metadata"
	MethodHealth    = "/" + ServiceName + "/Health"
	MethodTransform = "/" + ServiceName + "/Transform"
)

func EncodeRequest(req Request) (*structpb.Struct, error) {
	plugins := make([]any, 0, len(req.Options.Plugins))
	for _, p := range req.Options.Plugins {
		plugins = append(plugins, p)
	}
	return structpb.NewStruct(map[string]any{
		"source": req.Source,
		"options": map[string]any{
			"icon":        req.Options.Icon,
			"typescript":  req.Options.TypeScript,
			"export_type": string(req.Options.ExportType),
			"plugins":     plugins,
			"jsx_runtime": string(req.Options.JSXRuntime),
		},
		"state": map[string]any{
			"component_name": req.State.ComponentName,
			"file_path":      req.State.FilePath,
		},
	})
}

func DecodeRequest(s *structpb.Struct) (Request, error) {
	fields := s.GetFields()
	src, ok := fields["source"]
	if !ok {
		return Request{}, fmt.Errorf("transform: request has no source")
	}
	opts := fields["options"].GetStructValue().GetFields()
	state := fields["state"].GetStructValue().GetFields()

	req := Request{
		Source: src.GetStringValue(),
		Options: svgr.Options{
			Icon:       opts["icon"].GetBoolValue(),
			TypeScript: opts["typescript"].GetBoolValue(),
			ExportType: svgr.ExportType(opts["export_type"].GetStringValue()),
			JSXRuntime: svgr.JSXRuntime(opts["jsx_runtime"].GetStringValue()),
		},
		State: svgr.State{
			ComponentName: state["component_name"].GetStringValue(),
			FilePath:      state["file_path"].GetStringValue(),
		},
	}
	for _, v := range opts["plugins"].GetListValue().GetValues() {
		req.Options.Plugins = append(req.Options.Plugins, v.GetStringValue())
	}
	return req, nil
}

func EncodeMetadata(m Metadata) (*structpb.Struct, error) {
	stages := make([]any, 0, len(m.Stages))
	for _, s := range m.Stages {
		stages = append(stages, s)
	}
	return structpb.NewStruct(map[string]any{
		"name":    m.Name,
		"version": m.Version,
		"stages":  stages,
	})
}

func DecodeMetadata(s *structpb.Struct) Metadata {
	f := s.GetFields()
	m := Metadata{
		Name:    f["name"].GetStringValue(),
		Version: f["version"].GetStringValue(),
	}
	for _, v := range f["stages"].GetListValue().GetValues() {
		m.Stages = append(m.Stages, v.GetStringValue())
	}
	return m
}

func EncodeHealth(h Health) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{"ok": h.OK, "details": h.Details})
}

func DecodeHealth(s *structpb.Struct) Health {
	f := s.GetFields()
	return Health{OK: f["ok"].GetBoolValue(), Details: f["details"].GetStringValue()}
}
