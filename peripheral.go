package pdca

import "fmt"

//Peripheral selects which peripheral FIFO a channel is wired to for one
//transfer. RX codes move peripheral to memory, TX codes memory to peripheral.
/*
The values are fixed by the silicon and written verbatim into the peripheral
select register, which is why they must never be renumbered. The gap at 13 is
a hole in the silicon, not a mistake.
*/
type Peripheral uint8

//Valid Peripherals
const (
	USART0_RX      Peripheral = 0
	USART1_RX      Peripheral = 1
	USART2_RX      Peripheral = 2
	USART3_RX      Peripheral = 3
	SPI_RX         Peripheral = 4
	TWIM0_RX       Peripheral = 5
	TWIM1_RX       Peripheral = 6
	TWIM2_RX       Peripheral = 7
	TWIM3_RX       Peripheral = 8
	TWIS0_RX       Peripheral = 9
	TWIS1_RX       Peripheral = 10
	ADCIFE_RX      Peripheral = 11
	CATB_RX        Peripheral = 12
	IISC_CH0_RX    Peripheral = 14
	IISC_CH1_RX    Peripheral = 15
	PARC_RX        Peripheral = 16
	AESA_RX        Peripheral = 17
	USART0_TX      Peripheral = 18
	USART1_TX      Peripheral = 19
	USART2_TX      Peripheral = 20
	USART3_TX      Peripheral = 21
	SPI_TX         Peripheral = 22
	TWIM0_TX       Peripheral = 23
	TWIM1_TX       Peripheral = 24
	TWIM2_TX       Peripheral = 25
	TWIM3_TX       Peripheral = 26
	TWIS0_TX       Peripheral = 27
	TWIS1_TX       Peripheral = 28
	ADCIFE_TX      Peripheral = 29
	CATB_TX        Peripheral = 30
	ABDACB_SDR0_TX Peripheral = 31
	ABDACB_SDR1_TX Peripheral = 32
	IISC_CH0_TX    Peripheral = 33
	IISC_CH1_TX    Peripheral = 34
	DACC_TX        Peripheral = 35
	AESA_TX        Peripheral = 36
	LCDCA_ACMDR_TX Peripheral = 37
	LCDCA_ABMDR_TX Peripheral = 38
)

var peripheralNames = map[Peripheral]string{
	USART0_RX:      "USART0_RX",
	USART1_RX:      "USART1_RX",
	USART2_RX:      "USART2_RX",
	USART3_RX:      "USART3_RX",
	SPI_RX:         "SPI_RX",
	TWIM0_RX:       "TWIM0_RX",
	TWIM1_RX:       "TWIM1_RX",
	TWIM2_RX:       "TWIM2_RX",
	TWIM3_RX:       "TWIM3_RX",
	TWIS0_RX:       "TWIS0_RX",
	TWIS1_RX:       "TWIS1_RX",
	ADCIFE_RX:      "ADCIFE_RX",
	CATB_RX:        "CATB_RX",
	IISC_CH0_RX:    "IISC_CH0_RX",
	IISC_CH1_RX:    "IISC_CH1_RX",
	PARC_RX:        "PARC_RX",
	AESA_RX:        "AESA_RX",
	USART0_TX:      "USART0_TX",
	USART1_TX:      "USART1_TX",
	USART2_TX:      "USART2_TX",
	USART3_TX:      "USART3_TX",
	SPI_TX:         "SPI_TX",
	TWIM0_TX:       "TWIM0_TX",
	TWIM1_TX:       "TWIM1_TX",
	TWIM2_TX:       "TWIM2_TX",
	TWIM3_TX:       "TWIM3_TX",
	TWIS0_TX:       "TWIS0_TX",
	TWIS1_TX:       "TWIS1_TX",
	ADCIFE_TX:      "ADCIFE_TX",
	CATB_TX:        "CATB_TX",
	ABDACB_SDR0_TX: "ABDACB_SDR0_TX",
	ABDACB_SDR1_TX: "ABDACB_SDR1_TX",
	IISC_CH0_TX:    "IISC_CH0_TX",
	IISC_CH1_TX:    "IISC_CH1_TX",
	DACC_TX:        "DACC_TX",
	AESA_TX:        "AESA_TX",
	LCDCA_ACMDR_TX: "LCDCA_ACMDR_TX",
	LCDCA_ABMDR_TX: "LCDCA_ABMDR_TX",
}

//String returns the datasheet name of the peripheral code.
func (p Peripheral) String() string {
	if name, ok := peripheralNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Peripheral(%d)", uint8(p))
}
