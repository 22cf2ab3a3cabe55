package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newTransferCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Transfer reservation commands",
	}

	cmd.AddCommand(newTransferCreateCmd())
	cmd.AddCommand(newTransferListCmd())
	cmd.AddCommand(newTransferGetCmd())
	cmd.AddCommand(newTransferUpdateCmd())
	cmd.AddCommand(newTransferDeleteCmd())

	return cmd
}

func newTransferCreateCmd() *cobra.Command {
	var guest, room, phone, date, pickup, destination, flight, comments string
	var passengers int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a transfer reservation",
		RunE: func(cmd *cobra.Command, args []string) error {
			transferDate, err := time.Parse(time.RFC3339, date)
			if err != nil {
				return fmt.Errorf("--date must be RFC3339 (e.g. 2024-06-01T10:00:00Z): %w", err)
			}

			req := map[string]any{
				"guest_name":      guest,
				"room_number":     room,
				"phone_number":    phone,
				"transfer_date":   transferDate,
				"passengers":      passengers,
				"pickup_location": pickup,
				"destination":     destination,
			}
			if flight != "" {
				req["flight_number"] = flight
			}
			if comments != "" {
				req["comments"] = comments
			}

			var result Transfer
			if err := client.Post("/api/v1/transfers", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&guest, "guest", "", "Guest name (required)")
	cmd.Flags().StringVar(&room, "room", "", "Room number (required)")
	cmd.Flags().StringVar(&phone, "phone", "", "Contact phone number (required)")
	cmd.Flags().StringVar(&date, "date", "", "Transfer date, RFC3339 (required)")
	cmd.Flags().IntVar(&passengers, "passengers", 1, "Number of passengers")
	cmd.Flags().StringVar(&pickup, "pickup", "", "Pickup location (required)")
	cmd.Flags().StringVar(&destination, "destination", "", "Destination (required)")
	cmd.Flags().StringVar(&flight, "flight", "", "Flight number")
	cmd.Flags().StringVar(&comments, "comments", "", "Comments")
	_ = cmd.MarkFlagRequired("guest")
	_ = cmd.MarkFlagRequired("room")
	_ = cmd.MarkFlagRequired("phone")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("pickup")
	_ = cmd.MarkFlagRequired("destination")

	return cmd
}

func newTransferListCmd() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transfer reservations",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/transfers"
			if status != "" {
				path += "?status=" + status
			}

			var result []Transfer
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(TransferList(result))
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by status: scheduled, completed, canceled")

	return cmd
}

func newTransferGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Fetch a transfer reservation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Transfer
			if err := client.Get("/api/v1/transfers/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newTransferUpdateCmd() *cobra.Command {
	var guest, room, phone, date, pickup, destination, flight, comments, status string
	var passengers int

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Partially update a transfer reservation",
		Long: `Partially update a transfer reservation.

Only flags that are explicitly set are sent; omitted fields keep their
stored values.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{}
			if cmd.Flags().Changed("guest") {
				req["guest_name"] = guest
			}
			if cmd.Flags().Changed("room") {
				req["room_number"] = room
			}
			if cmd.Flags().Changed("phone") {
				req["phone_number"] = phone
			}
			if cmd.Flags().Changed("date") {
				transferDate, err := time.Parse(time.RFC3339, date)
				if err != nil {
					return fmt.Errorf("--date must be RFC3339: %w", err)
				}
				req["transfer_date"] = transferDate
			}
			if cmd.Flags().Changed("passengers") {
				req["passengers"] = passengers
			}
			if cmd.Flags().Changed("pickup") {
				req["pickup_location"] = pickup
			}
			if cmd.Flags().Changed("destination") {
				req["destination"] = destination
			}
			if cmd.Flags().Changed("flight") {
				req["flight_number"] = flight
			}
			if cmd.Flags().Changed("comments") {
				req["comments"] = comments
			}
			if cmd.Flags().Changed("status") {
				req["status"] = status
			}

			var result Transfer
			if err := client.Patch("/api/v1/transfers/"+args[0], req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&guest, "guest", "", "Guest name")
	cmd.Flags().StringVar(&room, "room", "", "Room number")
	cmd.Flags().StringVar(&phone, "phone", "", "Contact phone number")
	cmd.Flags().StringVar(&date, "date", "", "Transfer date, RFC3339")
	cmd.Flags().IntVar(&passengers, "passengers", 0, "Number of passengers")
	cmd.Flags().StringVar(&pickup, "pickup", "", "Pickup location")
	cmd.Flags().StringVar(&destination, "destination", "", "Destination")
	cmd.Flags().StringVar(&flight, "flight", "", "Flight number")
	cmd.Flags().StringVar(&comments, "comments", "", "Comments")
	cmd.Flags().StringVar(&status, "status", "", "Status: scheduled, completed, canceled")

	return cmd
}

func newTransferDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transfer reservation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/transfers/" + args[0]); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("deleted")
			return nil
		},
	}
}
