package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/juju/gnuflag"
	"github.com/saransh1220/limbgen/internal/gateway"
	"github.com/saransh1220/limbgen/internal/modules/upload"
	uploadApp "github.com/saransh1220/limbgen/internal/modules/upload/application"
	uploadDomain "github.com/saransh1220/limbgen/internal/modules/upload/domain"
	"github.com/saransh1220/limbgen/internal/modules/upload/infrastructure/transport"
	"github.com/saransh1220/limbgen/internal/modules/viewer"
	viewerDomain "github.com/saransh1220/limbgen/internal/modules/viewer/domain"
	"github.com/saransh1220/limbgen/internal/modules/volumes"
	"github.com/saransh1220/limbgen/internal/shared/infrastructure/config"
)

const usage = `usage: limbgen <command> [flags] [args]

commands:
  upload [--name name] <scan> <metadata.json>  upload a scan archive and its metadata
  status <job>                                 show the state of a job
  result [-o path] [--store] <job>             download the segmentation volume
  view [--key] <reference>                     open a volume in the browser viewer
  serve                                        serve local volumes to the viewer
`

var errUsage = errors.New("invalid usage")

func main() {
	cfg := config.Load()
	a := &app{cfg: cfg, stdout: os.Stdout, stderr: os.Stderr}
	os.Exit(a.run(context.Background(), os.Args[1:]))
}

// app wires modules on demand so each command only initializes what it uses
type app struct {
	cfg      config.Config
	stdout   io.Writer
	stderr   io.Writer
	renderer viewerDomain.Renderer
	serve    func(ctx context.Context, srv *gateway.Server) error
}

func (a *app) run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		fmt.Fprint(a.stderr, usage)
		return 2
	}

	commands := map[string]func(context.Context, []string) error{
		"upload": a.upload,
		"status": a.status,
		"result": a.result,
		"view":   a.view,
		"serve":  a.serveVolumes,
	}

	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(a.stderr, "unknown command %q\n%s", args[0], usage)
		return 2
	}

	if err := cmd(ctx, args[1:]); err != nil {
		if errors.Is(err, errUsage) || errors.Is(err, gnuflag.ErrHelp) {
			fmt.Fprint(a.stderr, usage)
			return 2
		}
		log.Printf("[limbgen.%s] %v", args[0], err)
		return 1
	}
	return 0
}

func (a *app) flags(name string) *gnuflag.FlagSet {
	fs := gnuflag.NewFlagSet(name, gnuflag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

func (a *app) uploadClient() (*uploadApp.Client, error) {
	m, err := upload.NewModule(a.cfg.Server, transport.NewHTTPClient(a.cfg.Server))
	if err != nil {
		return nil, err
	}
	return m.Client(), nil
}

func (a *app) upload(ctx context.Context, args []string) error {
	fs := a.flags("upload")
	name := fs.String("name", "", "file name sent with the scan (defaults to its base name)")
	raw := fs.Bool("raw", false, "print the raw server response")
	if err := fs.Parse(true, args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return errUsage
	}
	scanPath, metaPath := fs.Arg(0), fs.Arg(1)

	scan, err := os.Open(scanPath)
	if err != nil {
		return err
	}
	defer scan.Close()

	meta, err := os.Open(metaPath)
	if err != nil {
		return err
	}
	defer meta.Close()

	fileName := *name
	if fileName == "" {
		fileName = filepath.Base(scanPath)
	}

	client, err := a.uploadClient()
	if err != nil {
		return err
	}

	res, err := client.Upload(ctx, uploadDomain.Payload{
		File:         scan,
		FileName:     fileName,
		Metadata:     meta,
		MetadataName: filepath.Base(metaPath),
	})
	if err != nil {
		return err
	}

	if *raw {
		_, err := a.stdout.Write(res.Body)
		return err
	}
	job, err := uploadApp.DecodeJob(res)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, job.ID)
	return nil
}

func (a *app) status(ctx context.Context, args []string) error {
	fs := a.flags("status")
	if err := fs.Parse(true, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errUsage
	}

	client, err := a.uploadClient()
	if err != nil {
		return err
	}
	st, err := client.Status(ctx, fs.Arg(0))
	if err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, st.Status)
	return nil
}

func (a *app) result(ctx context.Context, args []string) error {
	fs := a.flags("result")
	out := fs.String("o", "", "output path (defaults to <job>_seg.nii.gz)")
	store := fs.Bool("store", false, "also keep the volume in the volume store and print its reference")
	if err := fs.Parse(true, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errUsage
	}
	jobID := fs.Arg(0)

	path := *out
	if path == "" {
		path = jobID + "_seg.nii.gz"
	}

	client, err := a.uploadClient()
	if err != nil {
		return err
	}

	n, err := download(path, func(w io.Writer) (int64, error) {
		return client.Result(ctx, jobID, w)
	})
	if err != nil {
		return err
	}
	log.Printf("[limbgen.result] Wrote %d bytes to %s", n, path)

	if !*store {
		fmt.Fprintln(a.stdout, path)
		return nil
	}

	vm, err := volumes.NewModule(ctx, a.cfg.FileStorage, a.cfg.Redis)
	if err != nil {
		return err
	}
	defer vm.Close()

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	key, err := vm.Service().StoreResult(ctx, jobID, f)
	if err != nil {
		return err
	}
	ref, err := vm.Service().Reference(ctx, key)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, ref)
	return nil
}

// download writes into a temporary file next to path and renames it into
// place only when fetch succeeds, so a failed fetch leaves path untouched
func download(path string, fetch func(io.Writer) (int64, error)) (int64, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return 0, err
	}

	var n int64
	if err = tmp.Chmod(0644); err == nil {
		n, err = fetch(tmp)
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(tmp.Name(), path)
	}
	if err != nil {
		os.Remove(tmp.Name())
		return n, err
	}
	return n, nil
}

func (a *app) view(ctx context.Context, args []string) error {
	fs := a.flags("view")
	byKey := fs.Bool("key", false, "treat the argument as a volume store key")
	if err := fs.Parse(true, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errUsage
	}
	ref := fs.Arg(0)

	if *byKey {
		vm, err := volumes.NewModule(ctx, a.cfg.FileStorage, a.cfg.Redis)
		if err != nil {
			return err
		}
		defer vm.Close()
		if ref, err = vm.Service().Reference(ctx, ref); err != nil {
			return err
		}
	}

	m, err := viewer.NewModule(a.cfg.Viewer, a.renderer)
	if err != nil {
		return err
	}
	v := m.Viewer()
	defer v.Close()

	return v.Show(ctx, ref)
}

func (a *app) serveVolumes(ctx context.Context, args []string) error {
	fs := a.flags("serve")
	if err := fs.Parse(true, args); err != nil {
		return err
	}
	if fs.NArg() != 0 {
		return errUsage
	}

	vm, err := volumes.NewModule(ctx, a.cfg.FileStorage, a.cfg.Redis)
	if err != nil {
		return err
	}
	defer vm.Close()

	root := vm.LocalRoot()
	if root == "" {
		return errors.New("volumes are stored in S3; nothing to serve locally")
	}

	handler := gateway.SetupRoutes(gateway.RoutesConfig{
		VolumeRoot:     root,
		AllowedOrigins: a.cfg.Gateway.AllowedOrigins,
	})
	srv := gateway.NewServer(a.cfg.Gateway.Port, handler)

	if a.serve != nil {
		return a.serve(ctx, srv)
	}
	return srv.Start()
}
