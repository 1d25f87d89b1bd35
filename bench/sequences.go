package bench

// Raw SPI sequences equivalent to the driver calls timed by Pass.  They were
// captured from the bus while the driver retuned instance 0 to 100 MHz and
// uploaded an all-zero 192 tap filter, so they only reproduce that state.

// CoarseDDC retunes the main DDC of ADC 0
var CoarseDDC = Sequence{
	Name: "Coarse NCO DDC update",
	Commands: []Command{
		{0x80, 0x18, 0x00}, {0x00, 0x18, 0x1d}, {0x80, 0x18, 0x8d}, {0x00, 0x18, 0x1d},
		{0x0a, 0x05, 0x66}, {0x0a, 0x06, 0x66}, {0x0a, 0x07, 0x66}, {0x0a, 0x08, 0x66},
		{0x0a, 0x09, 0x66}, {0x0a, 0x0a, 0x06}, {0x0a, 0x11, 0x00}, {0x0a, 0x12, 0x00},
		{0x0a, 0x13, 0x00}, {0x0a, 0x14, 0x00}, {0x0a, 0x15, 0x00}, {0x0a, 0x16, 0x00},
		{0x0a, 0x17, 0x00}, {0x0a, 0x18, 0x00}, {0x0a, 0x19, 0x00}, {0x0a, 0x1a, 0x00},
		{0x0a, 0x1b, 0x00}, {0x0a, 0x1c, 0x00}, {0x80, 0x18, 0x1d}, {0x00, 0x18, 0x1d},
		{0x0a, 0x0b, 0x30}, {0x0a, 0x0c, 0x33}, {0x0a, 0x0d, 0x33}, {0x0a, 0x0e, 0x33},
		{0x0a, 0x0f, 0x33}, {0x0a, 0x10, 0x33},
	},
}

// CoarseDUC retunes the main DUC carrying channel 0
var CoarseDUC = Sequence{
	Name: "Coarse NCO DUC update",
	Commands: []Command{
		{0x00, 0x1b, 0x01}, {0x81, 0xc9, 0x08}, {0x01, 0xc9, 0x08}, {0x00, 0x1b, 0x01},
		{0x81, 0xca, 0x03}, {0x01, 0xca, 0x03}, {0x81, 0xc9, 0x08}, {0x01, 0xc9, 0x08},
		{0x00, 0x1b, 0x01}, {0x01, 0xcb, 0x22}, {0x01, 0xcc, 0x22}, {0x01, 0xcd, 0x22},
		{0x01, 0xce, 0x22}, {0x01, 0xcf, 0x22}, {0x01, 0xd0, 0x02}, {0x81, 0xca, 0x03},
		{0x01, 0xca, 0x02}, {0x81, 0xca, 0x00}, {0x01, 0xca, 0x01}, {0x81, 0xca, 0x03},
	},
}

// FineDDC retunes the first receive channelizer of link 0
var FineDDC = Sequence{
	Name: "Fine NCO DDC update",
	Commands: []Command{
		{0x82, 0x81, 0xaa}, {0x80, 0x18, 0x1d}, {0x00, 0x18, 0x1d}, {0x82, 0x82, 0x01},
		{0x82, 0x82, 0x01}, {0x00, 0x19, 0x01}, {0x0a, 0x85, 0x99}, {0x0a, 0x86, 0x99},
		{0x0a, 0x87, 0x99}, {0x0a, 0x88, 0x99}, {0x0a, 0x89, 0x99}, {0x0a, 0x8a, 0x19},
		{0x0a, 0x91, 0x00}, {0x0a, 0x92, 0x00}, {0x0a, 0x93, 0x00}, {0x0a, 0x94, 0x00},
		{0x0a, 0x95, 0x00}, {0x0a, 0x96, 0x00}, {0x0a, 0x97, 0x00}, {0x0a, 0x98, 0x00},
		{0x0a, 0x99, 0x00}, {0x0a, 0x9a, 0x00}, {0x0a, 0x9b, 0x00}, {0x0a, 0x9c, 0x00},
	},
}

// FineDUC retunes transmit channelizer 0
var FineDUC = Sequence{
	Name: "Fine NCO DUC update",
	Commands: []Command{
		{0x81, 0xff, 0x68}, {0x00, 0x1c, 0x01}, {0x81, 0xa0, 0x40}, {0x01, 0xa0, 0x40},
		{0x00, 0x1c, 0x01}, {0x81, 0xa1, 0x03}, {0x01, 0xa1, 0x03}, {0x81, 0xa0, 0x40},
		{0x01, 0xa0, 0x40}, {0x00, 0x1c, 0x01}, {0x01, 0xa2, 0xcc}, {0x01, 0xa3, 0xcc},
		{0x01, 0xa4, 0xcc}, {0x01, 0xa5, 0xcc}, {0x01, 0xa6, 0xcc}, {0x01, 0xa7, 0x0c},
		{0x81, 0xa1, 0x03}, {0x01, 0xa1, 0x02}, {0x81, 0xa1, 0x00}, {0x01, 0xa1, 0x01},
		{0x81, 0xa1, 0x03},
	},
}

// PFIRUpdate programs both ADC pairs and every coefficient page
var PFIRUpdate = Sequence{
	Name: "PFIR update",
	Commands: []Command{
		{0x00, 0x1e, 0x01}, {0x8c, 0x0c, 0x00}, {0x0c, 0x0c, 0x05}, {0x00, 0x1e, 0x02},
		{0x8c, 0x0c, 0x00}, {0x0c, 0x0c, 0x05}, {0x00, 0x1e, 0x01}, {0x8c, 0x0c, 0x05},
		{0x0c, 0x0c, 0x55}, {0x00, 0x1e, 0x02}, {0x8c, 0x0c, 0x05}, {0x0c, 0x0c, 0x55},
		{0x00, 0x1e, 0x01}, {0x8c, 0x0d, 0x00}, {0x0c, 0x0d, 0x07}, {0x8c, 0x0d, 0x07},
		{0x0c, 0x0d, 0x3f}, {0x00, 0x1e, 0x02}, {0x8c, 0x0d, 0x00}, {0x0c, 0x0d, 0x07},
		{0x8c, 0x0d, 0x07}, {0x0c, 0x0d, 0x3f}, {0x00, 0x1e, 0x01}, {0x8c, 0x0f, 0x00},
		{0x0c, 0x0f, 0x07}, {0x8c, 0x0f, 0x07}, {0x0c, 0x0f, 0x3f}, {0x00, 0x1e, 0x02},
		{0x8c, 0x0f, 0x00}, {0x0c, 0x0f, 0x07}, {0x8c, 0x0f, 0x07}, {0x0c, 0x0f, 0x3f},
		{0x00, 0x1e, 0x01}, {0x8c, 0x1d, 0x00}, {0x0c, 0x1d, 0x10}, {0x00, 0x1e, 0x02},
		{0x8c, 0x1d, 0x00}, {0x0c, 0x1d, 0x10}, {0x00, 0x1f, 0x0f}, {0x19, 0x00, 0x00},
		{0x19, 0x01, 0x00}, {0x00, 0x1f, 0x0f}, {0x19, 0x02, 0x73}, {0x19, 0x03, 0x10},
		{0x00, 0x1f, 0x0f}, {0x19, 0x04, 0x00}, {0x19, 0x05, 0x00}, {0x00, 0x1f, 0x0f},
		{0x19, 0x06, 0xf8}, {0x19, 0x07, 0x10}, {0x00, 0x1f, 0x0f}, {0x19, 0x08, 0x1c},
		{0x19, 0x09, 0x00}, {0x00, 0x1f, 0x0f}, {0x19, 0x0a, 0xc1}, {0x19, 0x0b, 0x30},
		{0x00, 0x1f, 0x0f}, {0x19, 0x0c, 0x00}, {0x19, 0x0d, 0x00}, {0x00, 0x1f, 0x0f},
		{0x19, 0x0e, 0xbb}, {0x19, 0x0f, 0x10}, {0x00, 0x1f, 0x0f}, {0x19, 0x10, 0x03},
		{0x19, 0x11, 0xd0}, {0x00, 0x1f, 0x0f}, {0x19, 0x12, 0x56}, {0x19, 0x13, 0x16},
		{0x00, 0x1f, 0x0f}, {0x19, 0x14, 0x0c}, {0x19, 0x15, 0x00}, {0x00, 0x1f, 0x0f},
		{0x19, 0x16, 0xb2}, {0x19, 0x17, 0xbe}, {0x00, 0x1f, 0x0f}, {0x19, 0x18, 0x00},
		{0x19, 0x19, 0x00}, {0x00, 0x1f, 0x0f}, {0x19, 0x1a, 0x16}, {0x19, 0x1b, 0x11},
		{0x00, 0x1f, 0x0f}, {0x19, 0x1c, 0x00}, {0x19, 0x1d, 0x00}, {0x00, 0x1f, 0x0f},
		{0x19, 0x1e, 0x1a}, {0x19, 0x1f, 0x11}, {0x00, 0x1f, 0x0f}, {0x19, 0x20, 0x00},
		{0x19, 0x21, 0x00}, {0x00, 0x1f, 0x0f}, {0x19, 0x22, 0x77}, {0x19, 0x23, 0xe8},
		{0x00, 0x1f, 0x0f}, {0x19, 0x24, 0x30}, {0x19, 0x25, 0x00}, {0x00, 0x1f, 0x0f},
		{0x19, 0x26, 0x63}, {0x19, 0x27, 0xe8}, {0x00, 0x1f, 0x0f}, {0x19, 0x28, 0x00},
		{0x19, 0x29, 0x18}, {0x00, 0x1f, 0x0f}, {0x19, 0x2a, 0xfc}, {0x19, 0x2b, 0x99},
		{0x00, 0x1f, 0x0f}, {0x19, 0x2c, 0x00}, {0x19, 0x2d, 0x40}, {0x00, 0x1f, 0x0f},
		{0x19, 0x2e, 0x18}, {0x19, 0x2f, 0x13}, {0x00, 0x1f, 0x0f}, {0x19, 0x30, 0x00},
		{0x19, 0x31, 0x00}, {0x00, 0x1f, 0x0f}, {0x19, 0x32, 0x63}, {0x19, 0x33, 0x12},
		{0x00, 0x1f, 0x0f}, {0x19, 0x34, 0x00}, {0x19, 0x35, 0x00}, {0x00, 0x1f, 0x0f},
		{0x19, 0x36, 0xb7}, {0x19, 0x37, 0x10}, {0x00, 0x1f, 0x0f}, {0x19, 0x38, 0x00},
		{0x19, 0x39, 0x00}, {0x00, 0x1f, 0x0f}, {0x19, 0x3a, 0xc3}, {0x19, 0x3b, 0x10},
		{0x00, 0x1f, 0x0f}, {0x19, 0x3c, 0xff}, {0x19, 0x3d, 0xff}, {0x00, 0x1f, 0x0f},
		{0x19, 0x3e, 0x00}, {0x19, 0x3f, 0xb0}, {0x00, 0x1f, 0x0f}, {0x19, 0x40, 0x44},
		{0x19, 0x41, 0xfa}, {0x00, 0x1f, 0x0f}, {0x19, 0x42, 0xf4}, {0x19, 0x43, 0xb9},
		{0x00, 0x1f, 0x0f}, {0x19, 0x44, 0x00}, {0x19, 0x45, 0xb0}, {0x00, 0x1f, 0x0f},
		{0x19, 0x46, 0xc3}, {0x19, 0x47, 0x16}, {0x00, 0x1f, 0x0f}, {0x19, 0x48, 0x58},
		{0x19, 0x49, 0x00}, {0x00, 0x1f, 0x0f}, {0x19, 0x4a, 0x53}, {0x19, 0x4b, 0xbe},
		{0x00, 0x1f, 0x0f}, {0x19, 0x4c, 0x00}, {0x19, 0x4d, 0x00}, {0x00, 0x1f, 0x0f},
		{0x19, 0x4e, 0x73}, {0x19, 0x4f, 0x10}, {0x00, 0x1f, 0x0f}, {0x19, 0x50, 0x94},
		{0x19, 0x51, 0xff}, {0x00, 0x1f, 0x0f}, {0x19, 0x52, 0x19}, {0x19, 0x53, 0xbe},
		{0x00, 0x1f, 0x0f}, {0x19, 0x54, 0x28}, {0x19, 0x55, 0x01}, {0x00, 0x1f, 0x0f},
		{0x19, 0x56, 0x01}, {0x19, 0x57, 0xe9}, {0x00, 0x1f, 0x0f}, {0x19, 0x58, 0x00},
		{0x19, 0x59, 0x00}, {0x00, 0x1f, 0x0f}, {0x19, 0x5a, 0xfe}, {0x19, 0x5b, 0x10},
		{0x00, 0x1f, 0x0f}, {0x19, 0x5c, 0x00}, {0x19, 0x5d, 0x00}, {0x00, 0x1f, 0x0f},
		{0x19, 0x5e, 0xdd}, {0x19, 0x5f, 0x10}, {0x00, 0x1f, 0x0f}, {0x19, 0x60, 0x1c},
		{0x19, 0x61, 0x01}, {0x00, 0x1f, 0x0f}, {0x19, 0x62, 0xa1}, {0x19, 0x63, 0x30},
		{0x00, 0x1f, 0x0f}, {0x19, 0x64, 0xfb}, {0x19, 0x65, 0xff}, {0x00, 0x1f, 0x0f},
		{0x19, 0x66, 0x00}, {0x19, 0x67, 0xb0}, {0x00, 0x1f, 0x0f}, {0x19, 0x68, 0x98},
		{0x19, 0x69, 0xd8}, {0x00, 0x1f, 0x0f}, {0x19, 0x6a, 0xf4}, {0x19, 0x6b, 0xb9},
		{0x00, 0x1f, 0x0f}, {0x19, 0x6c, 0x00}, {0x19, 0x6d, 0x00}, {0x00, 0x1f, 0x0f},
		{0x19, 0x6e, 0x3c}, {0x19, 0x6f, 0x13}, {0x00, 0x1f, 0x0f}, {0x19, 0x70, 0x00},
		{0x19, 0x71, 0x00}, {0x00, 0x1f, 0x0f}, {0x19, 0x72, 0xb7}, {0x19, 0x73, 0x10},
		{0x00, 0x1f, 0x0f}, {0x19, 0x74, 0xff}, {0x19, 0x75, 0xff}, {0x00, 0x1f, 0x0f},
		{0x19, 0x76, 0x00}, {0x19, 0x77, 0xb0}, {0x00, 0x1f, 0x0f}, {0x19, 0x78, 0xc0},
		{0x19, 0x79, 0xf9}, {0x00, 0x1f, 0x0f}, {0x19, 0x7a, 0xf4}, {0x19, 0x7b, 0xb9},
		{0x00, 0x1f, 0x0f}, {0x19, 0x7c, 0x1c}, {0x19, 0x7d, 0x01}, {0x00, 0x1f, 0x0f},
		{0x19, 0x7e, 0xc1}, {0x19, 0x7f, 0x30}, {0x00, 0x1f, 0x0f}, {0x19, 0x80, 0x00},
		{0x19, 0x81, 0x00}, {0x00, 0x1f, 0x0f}, {0x19, 0x82, 0x77}, {0x19, 0x83, 0xe8},
		{0x00, 0x1f, 0x0f}, {0x19, 0x84, 0x00}, {0x19, 0x85, 0x00}, {0x00, 0x1f, 0x0f},
		{0x19, 0x86, 0xd3}, {0x19, 0x87, 0x10}, {0x00, 0x1f, 0x0f}, {0x19, 0x88, 0x04},
		{0x19, 0x89, 0x00}, {0x00, 0x1f, 0x0f}, {0x19, 0x8a, 0x63}, {0x19, 0x8b, 0xe8},
		{0x00, 0x1f, 0x0f}, {0x19, 0x8c, 0x00}, {0x19, 0x8d, 0x18}, {0x00, 0x1f, 0x0f},
		{0x19, 0x8e, 0xfc}, {0x19, 0x8f, 0x99}, {0x00, 0x1f, 0x0f}, {0x19, 0x90, 0x1c},
		{0x19, 0x91, 0x00}, {0x00, 0x1f, 0x0f}, {0x19, 0x92, 0xa1}, {0x19, 0x93, 0x30},
		{0x00, 0x1f, 0x0f}, {0x19, 0x94, 0x74}, {0x19, 0x95, 0xff}, {0x00, 0x1f, 0x0f},
		{0x19, 0x96, 0x36}, {0x19, 0x97, 0xbe}, {0x00, 0x1f, 0x0f}, {0x19, 0x98, 0x00},
		{0x19, 0x99, 0x00}, {0x00, 0x1f, 0x0f}, {0x19, 0x9a, 0xf8}, {0x19, 0x9b, 0x10},
		{0x00, 0x1f, 0x0f}, {0x19, 0x9c, 0x00}, {0x19, 0x9d, 0x00}, {0x00, 0x1f, 0x0f},
		{0x19, 0x9e, 0x73}, {0x19, 0x9f, 0x10}, {0x00, 0x1f, 0x0f}, {0x19, 0xa0, 0x00},
		{0x19, 0xa1, 0x00}, {0x00, 0x1f, 0x0f}, {0x19, 0xa2, 0xe1}, {0x19, 0xa3, 0xe9},
		{0x00, 0x1f, 0x0f}, {0x19, 0xa4, 0x2c}, {0x19, 0xa5, 0x01}, {0x00, 0x1f, 0x0f},
		{0x19, 0xa6, 0x61}, {0x19, 0xa7, 0xea}, {0x00, 0x1f, 0x0f}, {0x19, 0xa8, 0x30},
		{0x19, 0xa9, 0x01}, {0x00, 0x1f, 0x0f}, {0x19, 0xaa, 0xc1}, {0x19, 0xab, 0xea},
		{0x00, 0x1f, 0x0f}, {0x19, 0xac, 0x34}, {0x19, 0xad, 0x01}, {0x00, 0x1f, 0x0f},
		{0x19, 0xae, 0xe1}, {0x19, 0xaf, 0xea}, {0x00, 0x1f, 0x0f}, {0x19, 0xb0, 0x38},
		{0x19, 0xb1, 0x01}, {0x00, 0x1f, 0x0f}, {0x19, 0xb2, 0x01}, {0x19, 0xb3, 0xeb},
		{0x00, 0x1f, 0x0f}, {0x19, 0xb4, 0x3c}, {0x19, 0xb5, 0x01}, {0x00, 0x1f, 0x0f},
		{0x19, 0xb6, 0x21}, {0x19, 0xb7, 0xeb}, {0x00, 0x1f, 0x0f}, {0x19, 0xb8, 0x40},
		{0x19, 0xb9, 0x01}, {0x00, 0x1f, 0x0f}, {0x19, 0xba, 0x41}, {0x19, 0xbb, 0xeb},
		{0x00, 0x1f, 0x0f}, {0x19, 0xbc, 0x44}, {0x19, 0xbd, 0x01}, {0x00, 0x1f, 0x0f},
		{0x19, 0xbe, 0x61}, {0x19, 0xbf, 0xeb}, {0x00, 0x1f, 0x0f}, {0x19, 0xc0, 0x48},
		{0x19, 0xc1, 0x01}, {0x00, 0x1f, 0x0f}, {0x19, 0xc2, 0x81}, {0x19, 0xc3, 0xeb},
		{0x00, 0x1f, 0x0f}, {0x19, 0xc4, 0x4c}, {0x19, 0xc5, 0x01}, {0x00, 0x1f, 0x0f},
		{0x19, 0xc6, 0xa1}, {0x19, 0xc7, 0xeb}, {0x00, 0x1f, 0x0f}, {0x19, 0xc8, 0x50},
		{0x19, 0xc9, 0x01}, {0x00, 0x1f, 0x0f}, {0x19, 0xca, 0xc1}, {0x19, 0xcb, 0xeb},
		{0x00, 0x1f, 0x0f}, {0x19, 0xcc, 0x08}, {0x19, 0xcd, 0x00}, {0x00, 0x1f, 0x0f},
		{0x19, 0xce, 0x0f}, {0x19, 0xcf, 0xb6}, {0x00, 0x1f, 0x0f}, {0x19, 0xd0, 0x54},
		{0x19, 0xd1, 0x01}, {0x00, 0x1f, 0x0f}, {0x19, 0xd2, 0x21}, {0x19, 0xd3, 0x30},
		{0x00, 0x1f, 0x0f}, {0x19, 0xd4, 0xdc}, {0x19, 0xd5, 0xff}, {0x00, 0x1f, 0x0f},
		{0x19, 0xd6, 0x21}, {0x19, 0xd7, 0x30}, {0x00, 0x1f, 0x0f}, {0x19, 0xd8, 0x20},
		{0x19, 0xd9, 0x00}, {0x00, 0x1f, 0x0f}, {0x19, 0xda, 0xc1}, {0x19, 0xdb, 0xfa},
		{0x00, 0x1f, 0x0f}, {0x19, 0xdc, 0x00}, {0x19, 0xdd, 0x00}, {0x00, 0x1f, 0x0f},
		{0x19, 0xde, 0xe1}, {0x19, 0xdf, 0xf9}, {0x00, 0x1f, 0x0f}, {0x19, 0xe0, 0x1c},
		{0x19, 0xe1, 0x00}, {0x00, 0x1f, 0x0f}, {0x19, 0xe2, 0x61}, {0x19, 0xe3, 0xfa},
		{0x00, 0x1f, 0x0f}, {0x19, 0xe4, 0x00}, {0x19, 0xe5, 0x00}, {0x00, 0x1f, 0x0f},
		{0x19, 0xe6, 0x65}, {0x19, 0xe7, 0xe8}, {0x00, 0x1f, 0x0f}, {0x19, 0xe8, 0x40},
		{0x19, 0xe9, 0x00}, {0x00, 0x1f, 0x0f}, {0x19, 0xea, 0x63}, {0x19, 0xeb, 0xea},
		{0x00, 0x1f, 0x0f}, {0x19, 0xec, 0x14}, {0x19, 0xed, 0x00}, {0x00, 0x1f, 0x0f},
		{0x19, 0xee, 0x13}, {0x19, 0xef, 0xbe}, {0x00, 0x1f, 0x0f}, {0x19, 0xf0, 0x00},
		{0x19, 0xf1, 0x00}, {0x00, 0x1f, 0x0f}, {0x19, 0xf2, 0xc5}, {0x19, 0xf3, 0x12},
		{0x00, 0x1f, 0x0f}, {0x19, 0xf4, 0x00}, {0x19, 0xf5, 0x98}, {0x00, 0x1f, 0x0f},
		{0x19, 0xf6, 0xfc}, {0x19, 0xf7, 0x99}, {0x00, 0x1f, 0x0f}, {0x19, 0xf8, 0x00},
		{0x19, 0xf9, 0x00}, {0x00, 0x1f, 0x0f}, {0x19, 0xfa, 0xa6}, {0x19, 0xfb, 0x10},
		{0x00, 0x1f, 0x0f}, {0x19, 0xfc, 0x00}, {0x19, 0xfd, 0x00}, {0x00, 0x1f, 0x0f},
		{0x19, 0xfe, 0x63}, {0x19, 0xff, 0x12}, {0x00, 0x1f, 0x0f}, {0x1a, 0x00, 0x00},
		{0x1a, 0x01, 0x00}, {0x00, 0x1f, 0x0f}, {0x1a, 0x02, 0xd3}, {0x1a, 0x03, 0x10},
		{0x00, 0x1f, 0x0f}, {0x1a, 0x04, 0xff}, {0x1a, 0x05, 0xff}, {0x00, 0x1f, 0x0f},
		{0x1a, 0x06, 0x00}, {0x1a, 0x07, 0xb0}, {0x00, 0x1f, 0x0f}, {0x1a, 0x08, 0x7c},
		{0x1a, 0x09, 0xf9}, {0x00, 0x1f, 0x0f}, {0x1a, 0x0a, 0xf4}, {0x1a, 0x0b, 0xb9},
		{0x00, 0x1f, 0x0f}, {0x1a, 0x0c, 0x00}, {0x1a, 0x0d, 0x00}, {0x00, 0x1f, 0x0f},
		{0x1a, 0x0e, 0xb6}, {0x1a, 0x0f, 0x10}, {0x00, 0x1f, 0x0f}, {0x1a, 0x10, 0x00},
		{0x1a, 0x11, 0x00}, {0x00, 0x1f, 0x0f}, {0x1a, 0x12, 0x73}, {0x1a, 0x13, 0x10},
		{0x00, 0x1f, 0x0f}, {0x1a, 0x14, 0x00}, {0x1a, 0x15, 0x00}, {0x00, 0x1f, 0x0f},
		{0x1a, 0x16, 0xe1}, {0x1a, 0x17, 0xe9}, {0x00, 0x1f, 0x0f}, {0x1a, 0x18, 0x1c},
		{0x1a, 0x19, 0x00}, {0x00, 0x1f, 0x0f}, {0x1a, 0x1a, 0x61}, {0x1a, 0x1b, 0xea},
		{0x00, 0x1f, 0x0f}, {0x1a, 0x1c, 0x20}, {0x1a, 0x1d, 0x00}, {0x00, 0x1f, 0x0f},
		{0x1a, 0x1e, 0xc1}, {0x1a, 0x1f, 0xea}, {0x00, 0x1f, 0x0f}, {0x1a, 0x20, 0x08},
		{0x1a, 0x21, 0x00}, {0x00, 0x1f, 0x0f}, {0x1a, 0x22, 0x0f}, {0x1a, 0x23, 0xb6},
		{0x00, 0x1f, 0x0f}, {0x1a, 0x24, 0x24}, {0x1a, 0x25, 0x00}, {0x00, 0x1f, 0x0f},
		{0x1a, 0x26, 0x21}, {0x1a, 0x27, 0x30}, {0x00, 0x1f, 0x0f}, {0x1a, 0x28, 0xbc},
		{0x1a, 0x29, 0xff}, {0x00, 0x1f, 0x0f}, {0x1a, 0x2a, 0x21}, {0x1a, 0x2b, 0x30},
		{0x00, 0x1f, 0x0f}, {0x1a, 0x2c, 0x38}, {0x1a, 0x2d, 0x00}, {0x00, 0x1f, 0x0f},
		{0x1a, 0x2e, 0x41}, {0x1a, 0x2f, 0xfb}, {0x00, 0x1f, 0x0f}, {0x1a, 0x30, 0x00},
		{0x1a, 0x31, 0x00}, {0x00, 0x1f, 0x0f}, {0x1a, 0x32, 0x46}, {0x1a, 0x33, 0x13},
		{0x00, 0x1f, 0x0f}, {0x1a, 0x34, 0x3c}, {0x1a, 0x35, 0x00}, {0x00, 0x1f, 0x0f},
		{0x1a, 0x36, 0x61}, {0x1a, 0x37, 0xfb}, {0x00, 0x1f, 0x0f}, {0x1a, 0x38, 0x00},
		{0x1a, 0x39, 0x00}, {0x00, 0x1f, 0x0f}, {0x1a, 0x3a, 0x65}, {0x1a, 0x3b, 0x13},
		{0x00, 0x1f, 0x0f}, {0x1a, 0x3c, 0x00}, {0x1a, 0x3d, 0x00}, {0x00, 0x1f, 0x0f},
		{0x1a, 0x3e, 0xba}, {0x1a, 0x3f, 0x10}, {0x00, 0x1f, 0x0f}, {0x1a, 0x40, 0x20},
		{0x1a, 0x41, 0x00}, {0x00, 0x1f, 0x0f}, {0x1a, 0x42, 0xc0}, {0x1a, 0x43, 0x30},
		{0x00, 0x1f, 0x0f}, {0x1a, 0x44, 0x30}, {0x1a, 0x45, 0x00}, {0x00, 0x1f, 0x0f},
		{0x1a, 0x46, 0x01}, {0x1a, 0x47, 0xfb}, {0x00, 0x1f, 0x0f}, {0x1a, 0x48, 0x00},
		{0x1a, 0x49, 0x00}, {0x00, 0x1f, 0x0f}, {0x1a, 0x4a, 0xe1}, {0x1a, 0x4b, 0xf9},
		{0x00, 0x1f, 0x0f}, {0x1a, 0x4c, 0x24}, {0x1a, 0x4d, 0x00}, {0x00, 0x1f, 0x0f},
		{0x1a, 0x4e, 0x61}, {0x1a, 0x4f, 0xfa}, {0x00, 0x1f, 0x0f}, {0x1a, 0x50, 0x28},
		{0x1a, 0x51, 0x00}, {0x00, 0x1f, 0x0f}, {0x1a, 0x52, 0xc1}, {0x1a, 0x53, 0xfa},
		{0x00, 0x1f, 0x0f}, {0x1a, 0x54, 0x2c}, {0x1a, 0x55, 0x00}, {0x00, 0x1f, 0x0f},
		{0x1a, 0x56, 0xe1}, {0x1a, 0x57, 0xfa}, {0x00, 0x1f, 0x0f}, {0x1a, 0x58, 0x34},
		{0x1a, 0x59, 0x00}, {0x00, 0x1f, 0x0f}, {0x1a, 0x5a, 0x21}, {0x1a, 0x5b, 0xfb},
		{0x00, 0x1f, 0x0f}, {0x1a, 0x5c, 0x40}, {0x1a, 0x5d, 0x00}, {0x00, 0x1f, 0x0f},
		{0x1a, 0x5e, 0x81}, {0x1a, 0x5f, 0xfb}, {0x00, 0x1f, 0x0f}, {0x1a, 0x60, 0xfb},
		{0x1a, 0x61, 0xff}, {0x00, 0x1f, 0x0f}, {0x1a, 0x62, 0x00}, {0x1a, 0x63, 0xb0},
		{0x00, 0x1f, 0x0f}, {0x1a, 0x64, 0x64}, {0x1a, 0x65, 0xd9}, {0x00, 0x1f, 0x0f},
		{0x1a, 0x66, 0xf4}, {0x1a, 0x67, 0xb9}, {0x00, 0x1f, 0x0f}, {0x1a, 0x68, 0x00},
		{0x1a, 0x69, 0x00}, {0x00, 0x1f, 0x0f}, {0x1a, 0x6a, 0x07}, {0x1a, 0x6b, 0x13},
		{0x00, 0x1f, 0x0f}, {0x1a, 0x6c, 0x98}, {0x1a, 0x6d, 0x01}, {0x00, 0x1f, 0x0f},
		{0x1a, 0x6e, 0x03}, {0x1a, 0x6f, 0xbe}, {0x00, 0x1f, 0x0f}, {0x1a, 0x70, 0x20},
		{0x1a, 0x71, 0x00}, {0x00, 0x1f, 0x0f}, {0x1a, 0x72, 0x61}, {0x1a, 0x73, 0xf8},
		{0x00, 0x1f, 0x0f}, {0x1a, 0x74, 0x01}, {0x1a, 0x75, 0x00}, {0x00, 0x1f, 0x0f},
		{0x1a, 0x76, 0xe3}, {0x1a, 0x77, 0x32}, {0x00, 0x1f, 0x0f}, {0x1a, 0x78, 0x50},
		{0x1a, 0x79, 0x5b}, {0x00, 0x1f, 0x0f}, {0x1a, 0x7a, 0x04}, {0x1a, 0x7b, 0x00},
		{0x00, 0x1f, 0x0f}, {0x1a, 0x7c, 0xd0}, {0x1a, 0x7d, 0x5b}, {0x00, 0x1f, 0x0f},
		{0x1a, 0x7e, 0x04}, {0x1a, 0x7f, 0x00}, {0x00, 0x1e, 0x01}, {0x8c, 0x1d, 0x10},
		{0x0c, 0x1d, 0x00}, {0x00, 0x1e, 0x02}, {0x8c, 0x1d, 0x10}, {0x0c, 0x1d, 0x00},
		{0x00, 0x1e, 0x01}, {0x8c, 0x17, 0x00}, {0x0c, 0x17, 0x01}, {0x00, 0x1e, 0x02},
		{0x8c, 0x17, 0x00}, {0x0c, 0x17, 0x01}, {0x00, 0x1e, 0x01}, {0x8c, 0x17, 0x01},
		{0x0c, 0x17, 0x00}, {0x00, 0x1e, 0x02}, {0x8c, 0x17, 0x01}, {0x0c, 0x17, 0x00},
	},
}
