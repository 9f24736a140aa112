package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"spotfinder/internal/models"
	"spotfinder/internal/repository"
	"spotfinder/internal/service"

	"github.com/spf13/cobra"
)

// NewFindCommand creates the find command.
func NewFindCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "find <address>",
		Short: "Show the coordinates of a saved location",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withService(cmd.Context(), func(svc *service.LocationService) error {
				loc, err := svc.Find(cmd.Context(), args[0])
				if err != nil {
					return serviceError(err)
				}
				if loc == nil {
					return NewExitError(ExitFailure, fmt.Sprintf("address not found: %s", args[0]))
				}
				printLocation(cmd.OutOrStdout(), loc)
				return nil
			})
		},
	}
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <address> <latitude> <longitude>",
		Short: "Save a new location",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			lat, lng, err := parseCoordinates(args[1], args[2])
			if err != nil {
				return err
			}

			return rootOpts.withService(cmd.Context(), func(svc *service.LocationService) error {
				added, err := svc.Add(cmd.Context(), args[0], lat, lng)
				if err != nil {
					return serviceError(err)
				}
				if !added {
					return NewExitError(ExitFailure, fmt.Sprintf("address already exists: %s", args[0]))
				}
				return printStored(cmd, svc, "added", args[0])
			})
		},
	}
	// Negative coordinates must not be read as flags.
	cmd.Flags().SetInterspersed(false)
	return cmd
}

// NewUpdateCommand creates the update command.
func NewUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <address> <latitude> <longitude>",
		Short: "Move a saved location",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			lat, lng, err := parseCoordinates(args[1], args[2])
			if err != nil {
				return err
			}

			return rootOpts.withService(cmd.Context(), func(svc *service.LocationService) error {
				updated, err := svc.Update(cmd.Context(), args[0], lat, lng)
				if err != nil {
					return serviceError(err)
				}
				if !updated {
					return NewExitError(ExitFailure, fmt.Sprintf("address not found: %s", args[0]))
				}
				return printStored(cmd, svc, "updated", args[0])
			})
		},
	}
	cmd.Flags().SetInterspersed(false)
	return cmd
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <address>",
		Short: "Remove a saved location",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withService(cmd.Context(), func(svc *service.LocationService) error {
				deleted, err := svc.Delete(cmd.Context(), args[0])
				if err != nil {
					return serviceError(err)
				}
				if !deleted {
					return NewExitError(ExitFailure, fmt.Sprintf("address not found: %s", args[0]))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", repository.NormalizeAddress(args[0]))
				return nil
			})
		},
	}
}

// NewSuggestCommand creates the suggest command.
func NewSuggestCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <prefix>",
		Short: "List up to 10 saved addresses starting with prefix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withService(cmd.Context(), func(svc *service.LocationService) error {
				suggestions, err := svc.Suggest(cmd.Context(), args[0])
				if err != nil {
					return serviceError(err)
				}
				for _, s := range suggestions {
					fmt.Fprintln(cmd.OutOrStdout(), s)
				}
				return nil
			})
		},
	}
}

func printStored(cmd *cobra.Command, svc *service.LocationService, verb, address string) error {
	loc, err := svc.Find(cmd.Context(), address)
	if err != nil {
		return serviceError(err)
	}
	if loc == nil {
		return NewExitError(ExitFailure, fmt.Sprintf("address not found: %s", address))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s ", verb)
	printLocation(cmd.OutOrStdout(), loc)
	return nil
}

func printLocation(w io.Writer, loc *models.Location) {
	fmt.Fprintf(w, "%s\n", loc.Address)
	fmt.Fprintf(w, "  id:        %d\n", loc.ID)
	fmt.Fprintf(w, "  latitude:  %s\n", strconv.FormatFloat(loc.Latitude, 'f', -1, 64))
	fmt.Fprintf(w, "  longitude: %s\n", strconv.FormatFloat(loc.Longitude, 'f', -1, 64))
}

func parseCoordinates(latText, lngText string) (float64, float64, error) {
	lat, err := models.ParseCoordinate(latText)
	if err != nil {
		return 0, 0, NewExitError(ExitCommandError, fmt.Sprintf("invalid latitude %q", latText))
	}
	lng, err := models.ParseCoordinate(lngText)
	if err != nil {
		return 0, 0, NewExitError(ExitCommandError, fmt.Sprintf("invalid longitude %q", lngText))
	}
	return lat, lng, nil
}

func serviceError(err error) error {
	if errors.Is(err, service.ErrInvalidInput) {
		return WrapExitError(ExitCommandError, "invalid input", err)
	}
	return WrapExitError(ExitCommandError, "location store failure", err)
}
