package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lexhook/internal/pricing"
)

func newPriceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "price",
		Short: "Quote the price the booking intents would attach",
	}
	cmd.AddCommand(newHotelPriceCmd(), newCarPriceCmd())
	return cmd
}

func newHotelPriceCmd() *cobra.Command {
	var location, roomType string
	var nights int

	cmd := &cobra.Command{
		Use:   "hotel",
		Short: "Quote a hotel stay",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if nights < 1 || nights > 30 {
				return fmt.Errorf("--nights must be between 1 and 30")
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%.2f\n", pricing.Hotel(location, nights, roomType))
			return err
		},
	}
	cmd.Flags().StringVar(&location, "location", "", "city of the hotel")
	cmd.Flags().IntVar(&nights, "nights", 1, "number of nights")
	cmd.Flags().StringVar(&roomType, "room", "queen", "room type (queen, king, deluxe)")
	_ = cmd.MarkFlagRequired("location")
	return cmd
}

func newCarPriceCmd() *cobra.Command {
	var city, carType string
	var days, age int

	cmd := &cobra.Command{
		Use:   "car",
		Short: "Quote a car rental",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if days < 1 || days > 30 {
				return fmt.Errorf("--days must be between 1 and 30")
			}
			if age < 18 {
				return fmt.Errorf("--age must be at least 18")
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%.2f\n", pricing.Car(city, days, age, carType))
			return err
		},
	}
	cmd.Flags().StringVar(&city, "city", "", "pick up city")
	cmd.Flags().IntVar(&days, "days", 1, "rental length in days")
	cmd.Flags().IntVar(&age, "age", 30, "driver age")
	cmd.Flags().StringVar(&carType, "type", "economy", "car type")
	_ = cmd.MarkFlagRequired("city")
	return cmd
}
