// Package app bootstraps the command-line tools. It loads configuration,
// resolves paths, sets up logging and telemetry, and builds the
// preprocessing service.
//
//	application, err := app.NewApplication("preprocess")
//	if err != nil {
//	    os.Exit(1)
//	}
//	err = application.Run(func(ctx context.Context) error {
//	    _, err := application.Service.Preprocess(ctx, in, out)
//	    return err
//	})
package app
